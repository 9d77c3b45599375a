package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/obs"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/rs/zerolog"
)

type SalesConfig struct {
	Sales   port.SaleRepository
	Catalog *Catalog
	Metrics *obs.SalesMetrics
	Logger  zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Location defaults to domain.BusinessLocation.
	Location *time.Location
}

type Sales struct {
	sales    port.SaleRepository
	catalog  *Catalog
	metrics  *obs.SalesMetrics
	logger   zerolog.Logger
	now      func() time.Time
	location *time.Location
}

func NewSales(cfg SalesConfig) *Sales {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	location := cfg.Location
	if location == nil {
		location = domain.BusinessLocation()
	}
	return &Sales{
		sales:    cfg.Sales,
		catalog:  cfg.Catalog,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		now:      now,
		location: location,
	}
}

// Register validates and stores a sale. Sold products are evicted from the
// product cache under every code they were looked up by, so the next lookup
// sees the new stock.
func (s *Sales) Register(ctx context.Context, sale domain.Sale) (domain.SaleReceipt, error) {
	if len(sale.Items) == 0 {
		s.metrics.SaleResult(saleResult(domain.ErrEmptyCart))
		return domain.SaleReceipt{}, domain.ErrEmptyCart
	}
	for i, item := range sale.Items {
		if err := item.Validate(); err != nil {
			s.metrics.SaleResult(saleResult(err))
			return domain.SaleReceipt{}, fmt.Errorf("item %d: %w", i, err)
		}
	}

	receipt, err := s.sales.Register(ctx, sale, s.now().In(s.location))
	if err != nil {
		s.metrics.SaleResult(saleResult(err))
		return domain.SaleReceipt{}, err
	}

	s.metrics.SaleResult("ok")
	s.metrics.ObserveSale(receipt.Totals.Total.InexactFloat64())

	if s.catalog != nil {
		codes := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			codes = append(codes, item.Code)
		}
		s.catalog.Invalidate(codes...)
		s.catalog.InvalidateProducts(receipt.ProductIDs...)
	}

	s.logger.Info().
		Int64("invoice_id", receipt.InvoiceID).
		Str("invoice_number", receipt.InvoiceNumber).
		Str("total", receipt.Totals.Total.StringFixed(2)).
		Int("lines", len(sale.Items)).
		Msg("sale registered")

	return receipt, nil
}

func (s *Sales) LastInvoiceID(ctx context.Context) (int64, bool, error) {
	return s.sales.LastInvoiceID(ctx)
}

func saleResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty"
	case errors.Is(err, domain.ErrInvalidItem):
		return "invalid_item"
	case errors.Is(err, domain.ErrUnknownProduct):
		return "unknown_product"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrCAIExpired), errors.Is(err, domain.ErrInvoiceOutOfRange):
		return "authorization"
	default:
		return "error"
	}
}
