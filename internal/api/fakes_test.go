package api_test

import (
	"context"
	"fmt"

	"github.com/nikolayk812/caja-isv/internal/domain"
)

type fakeCatalog struct {
	products map[string]domain.Product
	page     domain.ProductPage
	filter   domain.ProductFilter
	created  []domain.Product
	barcodes map[string]int64
	err      error
}

func (f *fakeCatalog) Lookup(_ context.Context, code string) (domain.Product, error) {
	p, ok := f.products[code]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) List(_ context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	f.filter = filter
	return f.page, f.err
}

func (f *fakeCatalog) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	if f.err != nil {
		return domain.Product{}, f.err
	}
	p.ID = 55
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeCatalog) AddBarcode(_ context.Context, id int64, barcode string) error {
	if f.err != nil {
		return f.err
	}
	if f.barcodes == nil {
		f.barcodes = map[string]int64{}
	}
	f.barcodes[barcode] = id
	return nil
}

type fakeCustomers struct {
	customers []domain.Customer
}

func (f *fakeCustomers) List(context.Context) ([]domain.Customer, error) {
	return f.customers, nil
}

func (f *fakeCustomers) Create(_ context.Context, c domain.Customer) (domain.Customer, error) {
	if c.Name == "" {
		return domain.Customer{}, fmt.Errorf("%w: name is empty", domain.ErrInvalidCustomer)
	}
	c.ID = int64(len(f.customers) + 1)
	f.customers = append(f.customers, c)
	return c, nil
}

type fakeSales struct {
	sales   []domain.Sale
	receipt domain.SaleReceipt
	lastID  int64
	err     error
}

func (f *fakeSales) Register(_ context.Context, sale domain.Sale) (domain.SaleReceipt, error) {
	if len(sale.Items) == 0 {
		return domain.SaleReceipt{}, domain.ErrEmptyCart
	}
	if f.err != nil {
		return domain.SaleReceipt{}, f.err
	}
	f.sales = append(f.sales, sale)
	return f.receipt, nil
}

func (f *fakeSales) LastInvoiceID(context.Context) (int64, bool, error) {
	return f.lastID, f.lastID > 0, f.err
}

type fakeInvoices struct {
	docs map[int64]string
}

func (f *fakeInvoices) Printable(_ context.Context, id int64) ([]byte, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return []byte(doc), nil
}
