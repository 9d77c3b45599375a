package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Code        string
	Name        string
	Price       Money
	TaxCategory TaxCategory
	Stock       decimal.Decimal
	Weighed     bool
	CategoryID  *int64
	Active      bool
}

// CartItem builds the line a cashier rings up for quantity units of p.
func (p Product) CartItem(quantity decimal.Decimal) CartItem {
	return CartItem{
		Code:        p.Code,
		Description: p.Name,
		Price:       p.Price,
		Quantity:    quantity,
		TaxCategory: p.TaxCategory,
	}
}

type ProductStatus string

const (
	ProductsActive   ProductStatus = "activos"
	ProductsInactive ProductStatus = "inactivos"
	ProductsAll      ProductStatus = "todos"
)

func ParseProductStatus(s string) ProductStatus {
	switch ProductStatus(s) {
	case ProductsInactive:
		return ProductsInactive
	case ProductsAll:
		return ProductsAll
	default:
		return ProductsActive
	}
}

type ProductFilter struct {
	Query      string
	Status     ProductStatus
	CategoryID *int64
	Limit      int
	Offset     int
}

const (
	DefaultProductLimit = 200
	MaxProductLimit     = 1000
)

// Normalize clamps paging to the accepted window.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Limit <= 0 || f.Limit > MaxProductLimit {
		f.Limit = DefaultProductLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Status == "" {
		f.Status = ProductsActive
	}
	return f
}

type ProductPage struct {
	Items []Product
	Total int64
}

var sixDigitCode = regexp.MustCompile(`^[0-9]{6}$`)

// ShortCodeID reports the product id encoded in a six-digit shelf code
// ("000123" is product 123).
func ShortCodeID(code string) (int64, bool) {
	if !sixDigitCode.MatchString(code) {
		return 0, false
	}
	var id int64
	for _, r := range code {
		id = id*10 + int64(r-'0')
	}
	return id, true
}
