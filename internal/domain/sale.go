package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SaleStatusIssued = "emitida"
	PaymentCash      = "Efectivo"
)

// BusinessTimezone is the zone invoice dates and CAI deadlines are counted in.
const BusinessTimezone = "America/Tegucigalpa"

// BusinessLocation loads BusinessTimezone. Honduras keeps UTC-6 with no
// daylight saving, which is the fallback when no zone database is available.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(BusinessTimezone)
	if err != nil {
		return time.FixedZone("CST", -6*60*60)
	}
	return loc
}

// Sale is what a register submits when the cashier takes payment.
type Sale struct {
	// RequestID deduplicates resubmissions; uuid.Nil disables deduplication.
	RequestID    uuid.UUID
	CustomerName string
	CustomerRTN  string
	Items        []CartItem
	Cash         decimal.Decimal
}

func (s Sale) Customer() string {
	if s.CustomerName == "" {
		return FinalConsumer
	}
	return s.CustomerName
}

// Settle returns the cash tendered and the change owed. No cash means the
// exact amount was paid.
func (s Sale) Settle(total decimal.Decimal) (cash, change decimal.Decimal) {
	cash = s.Cash
	if cash.IsZero() {
		cash = total
	}
	return cash, cash.Sub(total).Round(2)
}

type SaleReceipt struct {
	InvoiceID     int64
	InvoiceNumber string
	Totals        Totals
	Cash          decimal.Decimal
	Change        decimal.Decimal
	// ProductIDs are the products whose stock the sale took. Empty when the
	// receipt answers a repeated request.
	ProductIDs []int64
}

// Invoice is a stored sale as printed.
type Invoice struct {
	ID            int64
	Number        string
	CAI           string
	CustomerName  string
	CustomerRTN   string
	Items         []CartItem
	Totals        Totals
	Cash          decimal.Decimal
	Change        decimal.Decimal
	PaymentMethod string
	Status        string
	IssuedAt      time.Time
}

type InvoiceKind string

const (
	InvoiceGeneral InvoiceKind = "G"
	InvoiceExempt  InvoiceKind = "E"
)

// CAI is a fiscal authorization (Código de Autorización de Impresión): a
// numbered range of invoices a point of emission may issue until a deadline.
type CAI struct {
	ID            int64
	Kind          InvoiceKind
	Code          string
	Establishment int
	EmissionPoint int
	DocumentType  int
	LastNumber    int64
	// RangeStart and RangeEnd are both zero when the range is unbounded.
	RangeStart int64
	RangeEnd   int64
	// Deadline is the last day the authorization may be used; zero means none.
	Deadline time.Time
	Active   bool
}

// Next returns the next document number and its printed form
// "EEE-PPP-TT-NNNNNNNN", validating deadline and range at now. The deadline
// is a calendar day compared with the date of now in now's own location, so
// callers pass now in the business location.
func (c CAI) Next(now time.Time) (int64, string, error) {
	next := c.LastNumber + 1

	if !c.Deadline.IsZero() {
		y, m, d := now.Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		dy, dm, dd := c.Deadline.Date()
		if today.After(time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)) {
			return 0, "", fmt.Errorf("%w (%s)", ErrCAIExpired, c.Deadline.Format(time.DateOnly))
		}
	}

	if c.RangeStart != 0 || c.RangeEnd != 0 {
		if next < c.RangeStart || next > c.RangeEnd {
			return 0, "", fmt.Errorf("%w (%d - %d)", ErrInvoiceOutOfRange, c.RangeStart, c.RangeEnd)
		}
	}

	return next, fmt.Sprintf("%03d-%03d-%02d-%08d", c.Establishment, c.EmissionPoint, c.DocumentType, next), nil
}
