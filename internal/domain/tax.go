package domain

import "fmt"

// TaxCategory classifies a product price for ISV purposes. The numeric values
// are the ones stored in the catalog and sent on the wire.
type TaxCategory int

const (
	TaxISV15  TaxCategory = 1
	TaxISV18  TaxCategory = 2
	TaxExempt TaxCategory = 3
)

func (c TaxCategory) Valid() bool {
	switch c {
	case TaxISV15, TaxISV18, TaxExempt:
		return true
	default:
		return false
	}
}

func (c TaxCategory) String() string {
	switch c {
	case TaxISV15:
		return "ISV 15%"
	case TaxISV18:
		return "ISV 18%"
	case TaxExempt:
		return "exento"
	default:
		return fmt.Sprintf("TaxCategory(%d)", int(c))
	}
}

// divisor and rate for tax-inclusive categories; ok is false for exempt or unknown.
func (c TaxCategory) split() (divisor, rate float64, ok bool) {
	switch c {
	case TaxISV15:
		return 1.15, 0.15, true
	case TaxISV18:
		return 1.18, 0.18, true
	default:
		return 0, 0, false
	}
}
