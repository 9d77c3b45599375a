package port

import (
	"context"
	"time"

	"github.com/nikolayk812/caja-isv/internal/domain"
)

type ProductRepository interface {
	GetByCode(ctx context.Context, code string) (domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	AddBarcode(ctx context.Context, productID int64, barcode string) error
}

type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
}

type SaleRepository interface {
	// Register stores the sale, its lines and the consumed invoice number and
	// decrements stock, atomically.
	Register(ctx context.Context, sale domain.Sale, now time.Time) (domain.SaleReceipt, error)
	LastInvoiceID(ctx context.Context) (int64, bool, error)
	GetInvoice(ctx context.Context, id int64) (domain.Invoice, error)
}

type ProductCache interface {
	Get(ctx context.Context, code string) (domain.Product, error)
	Set(ctx context.Context, code string, product domain.Product) error
	Delete(ctx context.Context, codes ...string) error
	DeleteProducts(ctx context.Context, ids ...int64) error
}
