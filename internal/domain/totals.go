package domain

import "github.com/shopspring/decimal"

// TaxBreakdown holds the raw float accumulators of an ISV computation.
// Prices are tax-inclusive: a 15% line contributes subtotal/1.15 to Taxed15
// and that base times 0.15 to ISV15.
type TaxBreakdown struct {
	Exempt  float64
	Taxed15 float64
	Taxed18 float64
	ISV15   float64
	ISV18   float64
}

// Totals is a TaxBreakdown rounded to cents for display, storage and printing.
type Totals struct {
	Exempt  decimal.Decimal
	Taxed15 decimal.Decimal
	Taxed18 decimal.Decimal
	ISV15   decimal.Decimal
	ISV18   decimal.Decimal
	Total   decimal.Decimal
}

func ComputeTaxes(items []CartItem) TaxBreakdown {
	var b TaxBreakdown
	for _, it := range items {
		b.add(it.Quantity.InexactFloat64()*it.Price.Amount.InexactFloat64(), it.TaxCategory)
	}
	return b
}

// LineTaxes is the breakdown of a single line, stored alongside each sale line.
func LineTaxes(item CartItem) TaxBreakdown {
	return ComputeTaxes([]CartItem{item})
}

func (b *TaxBreakdown) add(subtotal float64, category TaxCategory) {
	if category == TaxExempt {
		b.Exempt += subtotal
		return
	}
	divisor, rate, ok := category.split()
	if !ok {
		return
	}
	base := subtotal / divisor
	if category == TaxISV15 {
		b.Taxed15 += base
		b.ISV15 += base * rate
		return
	}
	b.Taxed18 += base
	b.ISV18 += base * rate
}

func (b TaxBreakdown) Total() float64 {
	return b.Exempt + b.Taxed15 + b.Taxed18 + b.ISV15 + b.ISV18
}

// Rounded rounds every accumulator independently; Total is the rounded raw
// total, not the sum of the rounded parts.
func (b TaxBreakdown) Rounded() Totals {
	return Totals{
		Exempt:  Round2(b.Exempt),
		Taxed15: Round2(b.Taxed15),
		Taxed18: Round2(b.Taxed18),
		ISV15:   Round2(b.ISV15),
		ISV18:   Round2(b.ISV18),
		Total:   Round2(b.Total()),
	}
}

// InvoiceKind picks the fiscal document series: exempt-only sales go to the
// exempt series, everything else to the general one.
func (t Totals) InvoiceKind() InvoiceKind {
	if t.Exempt.IsPositive() && t.Taxed15.IsZero() && t.Taxed18.IsZero() {
		return InvoiceExempt
	}
	return InvoiceGeneral
}
