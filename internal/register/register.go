// Package register is the cashier-side cart: it rings up items, shows ISV
// totals, submits the sale to the sales API and prints the invoice.
package register

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrNotPrinted marks a sale that was registered but whose invoice could not
// be printed. The invoice can be reprinted.
var ErrNotPrinted = errors.New("sale registered but invoice not printed")

type Config struct {
	API     port.SalesAPI
	Printer port.InvoicePrinter
	Logger  zerolog.Logger
	Now     func() time.Time
}

// Register is not safe for concurrent use; one cashier drives it.
type Register struct {
	api     port.SalesAPI
	printer port.InvoicePrinter
	logger  zerolog.Logger
	now     func() time.Time

	cart        domain.Cart
	lastInvoice int64
	// pending is reused by a retried Pay until the cart changes.
	pending uuid.UUID
}

func New(cfg Config) *Register {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Register{
		api:     cfg.API,
		printer: cfg.Printer,
		logger:  cfg.Logger,
		now:     now,
	}
}

// Start loads the id of the newest invoice so it can be reprinted. Failure
// is logged only.
func (r *Register) Start(ctx context.Context) {
	id, ok, err := r.api.LastInvoiceID(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("could not load last invoice")
		return
	}
	if ok {
		r.lastInvoice = id
	}
}

// Lookup returns a one-unit line for the product with code, ready for Add.
func (r *Register) Lookup(ctx context.Context, code string) (domain.CartItem, error) {
	product, err := r.api.LookupProduct(ctx, code)
	if err != nil {
		return domain.CartItem{}, err
	}
	return product.CartItem(decimal.NewFromInt(1)), nil
}

// Add merges item into the cart. A zero quantity counts as one unit.
func (r *Register) Add(item domain.CartItem) error {
	item.Code = strings.TrimSpace(item.Code)
	item.Description = strings.TrimSpace(item.Description)
	if item.Quantity.IsZero() {
		item.Quantity = decimal.NewFromInt(1)
	}
	item.Price = domain.Lempiras(item.Price.Amount)
	if err := item.Validate(); err != nil {
		return err
	}

	item.AddedAt = r.now()
	r.cart.Add(item)
	r.pending = uuid.Nil
	return nil
}

func (r *Register) Remove(index int) (domain.CartItem, error) {
	removed, err := r.cart.Remove(index)
	if err != nil {
		return domain.CartItem{}, err
	}
	r.pending = uuid.Nil
	return removed, nil
}

// Items returns a copy of the cart lines in ring-up order.
func (r *Register) Items() []domain.CartItem {
	items := make([]domain.CartItem, len(r.cart.Items))
	copy(items, r.cart.Items)
	return items
}

func (r *Register) Totals() domain.Totals {
	return r.cart.Totals().Rounded()
}

// LastInvoiceID is the invoice Reprint prints; ok is false before the first sale.
func (r *Register) LastInvoiceID() (int64, bool) {
	return r.lastInvoice, r.lastInvoice > 0
}

// Pay registers the cart as a sale, prints its invoice and empties the cart.
// Zero cash means the exact amount. When printing fails the sale stands,
// the cart is still cleared, and the error wraps ErrNotPrinted.
func (r *Register) Pay(ctx context.Context, customer domain.Customer, cash decimal.Decimal) (domain.SaleReceipt, error) {
	if r.cart.Len() == 0 {
		return domain.SaleReceipt{}, domain.ErrEmptyCart
	}
	if cash.IsNegative() {
		return domain.SaleReceipt{}, fmt.Errorf("cash must not be negative: %s", cash)
	}
	if r.pending == uuid.Nil {
		r.pending = uuid.New()
	}

	receipt, err := r.api.RegisterSale(ctx, domain.Sale{
		RequestID:    r.pending,
		CustomerName: strings.TrimSpace(customer.Name),
		CustomerRTN:  strings.TrimSpace(customer.RTN),
		Items:        r.Items(),
		Cash:         cash,
	})
	if err != nil {
		return domain.SaleReceipt{}, err
	}

	r.lastInvoice = receipt.InvoiceID
	r.cart.Clear()
	r.pending = uuid.Nil

	r.logger.Info().
		Int64("invoice_id", receipt.InvoiceID).
		Str("invoice_number", receipt.InvoiceNumber).
		Str("total", receipt.Totals.Total.StringFixed(2)).
		Msg("sale registered")

	if err := r.print(ctx, receipt.InvoiceID); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// Reprint prints the last invoice again.
func (r *Register) Reprint(ctx context.Context) error {
	id, ok := r.LastInvoiceID()
	if !ok {
		return domain.ErrNoInvoice
	}
	return r.print(ctx, id)
}

func (r *Register) Customers(ctx context.Context) ([]domain.Customer, error) {
	return r.api.ListCustomers(ctx)
}

func (r *Register) Products(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	return r.api.ListProducts(ctx, filter)
}

func (r *Register) print(ctx context.Context, invoiceID int64) error {
	doc, err := r.api.PrintableInvoice(ctx, invoiceID)
	if err == nil {
		err = r.printer.Print(ctx, invoiceID, doc)
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("invoice_id", invoiceID).Msg("invoice not printed")
		return fmt.Errorf("%w: invoice %d: %w", ErrNotPrinted, invoiceID, err)
	}
	return nil
}
