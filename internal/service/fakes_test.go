package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/nikolayk812/caja-isv/internal/cache"
	"github.com/nikolayk812/caja-isv/internal/domain"
)

type fakeProducts struct {
	mu       sync.Mutex
	byCode   map[string]domain.Product
	lookups  int
	created  []domain.Product
	barcodes map[string]int64
	err      error
}

func newFakeProducts(products ...domain.Product) *fakeProducts {
	f := &fakeProducts{byCode: map[string]domain.Product{}, barcodes: map[string]int64{}}
	for _, p := range products {
		f.byCode[p.Code] = p
	}
	return f
}

func (f *fakeProducts) GetByCode(_ context.Context, code string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return domain.Product{}, f.err
	}
	p, ok := f.byCode[code]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProducts) List(_ context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	page := domain.ProductPage{}
	for _, p := range f.byCode {
		page.Items = append(page.Items, p)
	}
	page.Total = int64(len(page.Items))
	if len(page.Items) > filter.Limit {
		page.Items = page.Items[:filter.Limit]
	}
	return page, f.err
}

func (f *fakeProducts) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Product{}, f.err
	}
	product.ID = int64(len(f.created) + 1)
	f.created = append(f.created, product)
	f.byCode[product.Code] = product
	return product, nil
}

func (f *fakeProducts) AddBarcode(_ context.Context, productID int64, barcode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.barcodes[barcode] = productID
	return nil
}

func (f *fakeProducts) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups
}

type fakeCache struct {
	mu         sync.Mutex
	items      map[string]domain.Product
	deleted    []string
	deletedIDs []int64
	getErr     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: map[string]domain.Product{}}
}

func (f *fakeCache) Get(_ context.Context, code string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return domain.Product{}, f.getErr
	}
	p, ok := f.items[code]
	if !ok {
		return domain.Product{}, cache.ErrCacheMiss
	}
	return p, nil
}

func (f *fakeCache) Set(_ context.Context, code string, product domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[code] = product
	return nil
}

func (f *fakeCache) Delete(_ context.Context, codes ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, code := range codes {
		delete(f.items, code)
	}
	f.deleted = append(f.deleted, codes...)
	return nil
}

func (f *fakeCache) DeleteProducts(_ context.Context, ids ...int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for code, p := range f.items {
		if slices.Contains(ids, p.ID) {
			delete(f.items, code)
		}
	}
	f.deletedIDs = append(f.deletedIDs, ids...)
	return nil
}

func (f *fakeCache) has(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[code]
	return ok
}

type fakeSales struct {
	registered []domain.Sale
	at         []time.Time
	receipt    domain.SaleReceipt
	invoices   map[int64]domain.Invoice
	err        error
}

func (f *fakeSales) Register(_ context.Context, sale domain.Sale, now time.Time) (domain.SaleReceipt, error) {
	if f.err != nil {
		return domain.SaleReceipt{}, f.err
	}
	f.registered = append(f.registered, sale)
	f.at = append(f.at, now)
	return f.receipt, nil
}

func (f *fakeSales) LastInvoiceID(context.Context) (int64, bool, error) {
	if len(f.registered) == 0 {
		return 0, false, nil
	}
	return f.receipt.InvoiceID, true, nil
}

func (f *fakeSales) GetInvoice(_ context.Context, id int64) (domain.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return inv, nil
}
