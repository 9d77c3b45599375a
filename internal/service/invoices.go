package service

import (
	"context"

	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
)

type InvoiceRenderer interface {
	Render(inv domain.Invoice) ([]byte, error)
}

type Invoices struct {
	sales    port.SaleRepository
	renderer InvoiceRenderer
}

func NewInvoices(sales port.SaleRepository, renderer InvoiceRenderer) *Invoices {
	return &Invoices{sales: sales, renderer: renderer}
}

// Printable renders the stored sale id as a receipt.
func (s *Invoices) Printable(ctx context.Context, id int64) ([]byte, error) {
	inv, err := s.sales.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(inv)
}
