package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Lempira is the only currency a register handles.
var Lempira = currency.MustParseISO("HNL")

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func Lempiras(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: Lempira}
}

// String renders the amount the way receipts and the cart display it: "L 12.34".
func (m Money) String() string {
	return FormatLempiras(m.Amount)
}

func FormatLempiras(amount decimal.Decimal) string {
	return "L " + amount.StringFixed(2)
}

// Round2 rounds a float accumulator to cents on its exact binary value, so
// 1.005 (stored as 1.00499...) becomes 1.00, never 1.01.
func Round2(f float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(f, 'f', 2, 64))
}
