package port

import (
	"context"

	"github.com/nikolayk812/caja-isv/internal/domain"
)

// SalesAPI is the backend a register talks to.
type SalesAPI interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
	LookupProduct(ctx context.Context, code string) (domain.Product, error)
	LastInvoiceID(ctx context.Context) (int64, bool, error)
	RegisterSale(ctx context.Context, sale domain.Sale) (domain.SaleReceipt, error)
	PrintableInvoice(ctx context.Context, id int64) ([]byte, error)
}

type InvoicePrinter interface {
	Print(ctx context.Context, invoiceID int64, document []byte) error
}
