package api

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/rs/zerolog"
)

type Catalog interface {
	Lookup(ctx context.Context, code string) (domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	AddBarcode(ctx context.Context, productID int64, barcode string) error
}

type Customers interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
}

type Sales interface {
	Register(ctx context.Context, sale domain.Sale) (domain.SaleReceipt, error)
	LastInvoiceID(ctx context.Context) (int64, bool, error)
}

type Invoices interface {
	Printable(ctx context.Context, id int64) ([]byte, error)
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Catalog   Catalog
	Customers Customers
	Sales     Sales
	Invoices  Invoices
	Logger    zerolog.Logger
}

// Handler serves the JSON API the registers talk to.
type Handler struct {
	catalog   Catalog
	customers Customers
	sales     Sales
	invoices  Invoices
	logger    zerolog.Logger
	validate  *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		catalog:   cfg.Catalog,
		customers: cfg.Customers,
		sales:     cfg.Sales,
		invoices:  cfg.Invoices,
		logger:    cfg.Logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}
