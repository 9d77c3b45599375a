package invoice

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/nikolayk812/caja-isv/internal/config"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/shopspring/decimal"
)

// Width is the number of monospace columns of an 80mm thermal roll.
const Width = 42

//go:embed receipt.tmpl
var receiptTemplate string

// Renderer turns stored invoices into plain-text receipts.
type Renderer struct {
	company config.Company
	tmpl    *template.Template
}

func NewRenderer(company config.Company) *Renderer {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"center": center,
		"pair":   pair,
		"clip":   clip,
		"rule":   func() string { return strings.Repeat("-", Width) },
		"upper":  strings.ToUpper,
		"money":  domain.FormatLempiras,
	}).Parse(receiptTemplate))

	return &Renderer{company: company, tmpl: tmpl}
}

type receiptLine struct {
	Description string
	Quantity    string
	Price       string
	Subtotal    string
	Marker      string
}

type receiptData struct {
	Company config.Company
	Invoice domain.Invoice
	Lines   []receiptLine
	Totals  domain.Totals
}

// Render prints inv. Totals come from the invoice lines, not from the stored header.
func (r *Renderer) Render(inv domain.Invoice) ([]byte, error) {
	data := receiptData{
		Company: r.company,
		Invoice: inv,
		Totals:  domain.ComputeTaxes(inv.Items).Rounded(),
	}
	if data.Invoice.CustomerName == "" {
		data.Invoice.CustomerName = domain.FinalConsumer
	}

	for _, it := range inv.Items {
		marker := " "
		if it.TaxCategory == domain.TaxExempt {
			marker = "E"
		}
		data.Lines = append(data.Lines, receiptLine{
			Description: it.Description,
			Quantity:    quantity(it.Quantity),
			Price:       it.Price.Amount.StringFixed(2),
			Subtotal:    it.Subtotal().StringFixed(2),
			Marker:      marker,
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("tmpl.Execute: %w", err)
	}
	return buf.Bytes(), nil
}

// quantity prints whole units without decimals and weighed ones with three.
func quantity(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.String()
	}
	return q.StringFixed(3)
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= Width {
		return clip(s)
	}
	return strings.Repeat(" ", (Width-n)/2) + s
}

func pair(label, value string) string {
	gap := Width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= Width {
		return s
	}
	return string([]rune(s)[:Width])
}
