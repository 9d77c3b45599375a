package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the ordered list of line items rung up at a register. It is not
// safe for concurrent use.
type Cart struct {
	Items []CartItem
}

type CartItem struct {
	Code        string
	Description string
	Price       Money
	Quantity    decimal.Decimal
	TaxCategory TaxCategory

	AddedAt time.Time
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.Price.Amount)
}

// Scales of stored prices and quantities. Finer values would be rounded on
// storage and a reprint would no longer match the registered totals.
const (
	PriceScale    = 2
	QuantityScale = 3
)

func (i CartItem) Validate() error {
	switch {
	case i.Code == "":
		return fmt.Errorf("%w: code is empty", ErrInvalidItem)
	case i.Description == "":
		return fmt.Errorf("%w: description is empty", ErrInvalidItem)
	case !i.Price.Amount.IsPositive():
		return fmt.Errorf("%w: price must be positive", ErrInvalidItem)
	case !i.Quantity.IsPositive():
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidItem)
	case !fitsScale(i.Price.Amount, PriceScale):
		return fmt.Errorf("%w: price %s has more than %d decimals", ErrInvalidItem, i.Price.Amount, PriceScale)
	case !fitsScale(i.Quantity, QuantityScale):
		return fmt.Errorf("%w: quantity %s has more than %d decimals", ErrInvalidItem, i.Quantity, QuantityScale)
	case !i.TaxCategory.Valid():
		return fmt.Errorf("%w: tax category %d", ErrInvalidItem, int(i.TaxCategory))
	}
	return nil
}

func fitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

// Add merges item into the row with the same code, or appends it.
// A merged row keeps its original description, price and category.
func (c *Cart) Add(item CartItem) {
	if idx := c.IndexOf(item.Code); idx >= 0 {
		c.Items[idx].Quantity = c.Items[idx].Quantity.Add(item.Quantity)
		return
	}
	c.Items = append(c.Items, item)
}

func (c *Cart) IndexOf(code string) int {
	for i, it := range c.Items {
		if it.Code == code {
			return i
		}
	}
	return -1
}

func (c *Cart) Remove(index int) (CartItem, error) {
	if index < 0 || index >= len(c.Items) {
		return CartItem{}, fmt.Errorf("%w: %d of %d", ErrItemIndex, index, len(c.Items))
	}
	removed := c.Items[index]
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return removed, nil
}

func (c *Cart) Len() int {
	return len(c.Items)
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Totals() TaxBreakdown {
	return ComputeTaxes(c.Items)
}
