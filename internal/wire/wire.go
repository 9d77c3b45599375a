// Package wire holds the JSON bodies exchanged between registers and the
// sales API. Amounts travel as JSON numbers.
package wire

import (
	"strings"

	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// IdempotencyHeader carries the register-generated id of a sale submission.
const IdempotencyHeader = "Idempotency-Key"

// TotalCountHeader carries the unpaged size of a product listing.
const TotalCountHeader = "X-Total-Count"

type Error struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type Product struct {
	ID          int64           `json:"id"`
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	TaxCategory int             `json:"id_isv"`
	Stock       decimal.Decimal `json:"stock"`
	Weighed     bool            `json:"pesable"`
	CategoryID  *int64          `json:"id_categoria"`
}

func FromProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Price:       p.Price.Amount,
		TaxCategory: int(p.TaxCategory),
		Stock:       p.Stock,
		Weighed:     p.Weighed,
		CategoryID:  p.CategoryID,
	}
}

func (p Product) Domain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Price:       domain.Lempiras(p.Price),
		TaxCategory: domain.TaxCategory(p.TaxCategory),
		Stock:       p.Stock,
		Weighed:     p.Weighed,
		CategoryID:  p.CategoryID,
		Active:      true,
	}
}

type CreateProduct struct {
	Code        string          `json:"barra"`
	Name        string          `json:"nombre" validate:"required,max=200"`
	Price       decimal.Decimal `json:"precio"`
	TaxCategory int             `json:"id_isv" validate:"omitempty,oneof=1 2 3"`
	Stock       decimal.Decimal `json:"stock"`
	Weighed     bool            `json:"pesable"`
	CategoryID  *int64          `json:"id_categoria" validate:"omitempty,gt=0"`
}

func (c CreateProduct) Domain() domain.Product {
	category := domain.TaxCategory(c.TaxCategory)
	if c.TaxCategory == 0 {
		category = domain.TaxExempt
	}
	return domain.Product{
		Code:        strings.TrimSpace(c.Code),
		Name:        strings.TrimSpace(c.Name),
		Price:       domain.Lempiras(c.Price),
		TaxCategory: category,
		Stock:       c.Stock,
		Weighed:     c.Weighed,
		CategoryID:  c.CategoryID,
		Active:      true,
	}
}

type AddBarcode struct {
	Barcode string `json:"barra" validate:"required,max=64"`
}

type Customer struct {
	ID   int64  `json:"id_cliente"`
	RTN  string `json:"rtn"`
	Name string `json:"nombre"`
}

func FromCustomer(c domain.Customer) Customer {
	return Customer{ID: c.ID, RTN: c.RTN, Name: c.Name}
}

func (c Customer) Domain() domain.Customer {
	return domain.Customer{ID: c.ID, RTN: c.RTN, Name: c.Name}
}

type CreateCustomer struct {
	Name string `json:"nombre" validate:"required,max=200"`
	RTN  string `json:"rtn" validate:"omitempty,max=20"`
}

type CustomerCreated struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id_cliente"`
}

type LastInvoice struct {
	ID *int64 `json:"id"`
}

type SaleItem struct {
	Code        string          `json:"codigo" validate:"required"`
	Description string          `json:"descripcion" validate:"required"`
	Price       decimal.Decimal `json:"precio"`
	Quantity    decimal.Decimal `json:"cantidad"`
	TaxCategory int             `json:"id_isv" validate:"oneof=1 2 3"`
}

type Payment struct {
	Cash decimal.Decimal `json:"efectivo"`
}

type SaleRequest struct {
	CustomerName string     `json:"cliente_nombre" validate:"max=200"`
	CustomerRTN  string     `json:"cliente_rtn" validate:"max=20"`
	Items        []SaleItem `json:"items" validate:"dive"`
	Payment      Payment    `json:"pago"`
}

func FromSale(s domain.Sale) SaleRequest {
	req := SaleRequest{
		CustomerName: s.CustomerName,
		CustomerRTN:  s.CustomerRTN,
		Items:        make([]SaleItem, 0, len(s.Items)),
		Payment:      Payment{Cash: s.Cash},
	}
	for _, it := range s.Items {
		req.Items = append(req.Items, SaleItem{
			Code:        it.Code,
			Description: it.Description,
			Price:       it.Price.Amount,
			Quantity:    it.Quantity,
			TaxCategory: int(it.TaxCategory),
		})
	}
	return req
}

func (r SaleRequest) Domain() domain.Sale {
	sale := domain.Sale{
		CustomerName: strings.TrimSpace(r.CustomerName),
		CustomerRTN:  strings.TrimSpace(r.CustomerRTN),
		Items:        make([]domain.CartItem, 0, len(r.Items)),
		Cash:         r.Payment.Cash,
	}
	for _, it := range r.Items {
		sale.Items = append(sale.Items, domain.CartItem{
			Code:        strings.TrimSpace(it.Code),
			Description: it.Description,
			Price:       domain.Lempiras(it.Price),
			Quantity:    it.Quantity,
			TaxCategory: domain.TaxCategory(it.TaxCategory),
		})
	}
	return sale
}

type Totals struct {
	Exempt  decimal.Decimal `json:"exento"`
	Taxed15 decimal.Decimal `json:"gravado15"`
	Taxed18 decimal.Decimal `json:"gravado18"`
	ISV15   decimal.Decimal `json:"isv15"`
	ISV18   decimal.Decimal `json:"isv18"`
	Total   decimal.Decimal `json:"total"`
}

type SaleResponse struct {
	OK            bool            `json:"ok"`
	InvoiceID     int64           `json:"factura_id"`
	InvoiceNumber string          `json:"numero_factura"`
	Totals        Totals          `json:"totales"`
	Cash          decimal.Decimal `json:"efectivo"`
	Change        decimal.Decimal `json:"cambio"`
	PrintURL      string          `json:"imprimir_url"`
}

func FromReceipt(r domain.SaleReceipt, printURL string) SaleResponse {
	return SaleResponse{
		OK:            true,
		InvoiceID:     r.InvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		Totals: Totals{
			Exempt:  r.Totals.Exempt,
			Taxed15: r.Totals.Taxed15,
			Taxed18: r.Totals.Taxed18,
			ISV15:   r.Totals.ISV15,
			ISV18:   r.Totals.ISV18,
			Total:   r.Totals.Total,
		},
		Cash:     r.Cash,
		Change:   r.Change,
		PrintURL: printURL,
	}
}

func (r SaleResponse) Domain() domain.SaleReceipt {
	return domain.SaleReceipt{
		InvoiceID:     r.InvoiceID,
		InvoiceNumber: r.InvoiceNumber,
		Totals: domain.Totals{
			Exempt:  r.Totals.Exempt,
			Taxed15: r.Totals.Taxed15,
			Taxed18: r.Totals.Taxed18,
			ISV15:   r.Totals.ISV15,
			ISV18:   r.Totals.ISV18,
			Total:   r.Totals.Total,
		},
		Cash:   r.Cash,
		Change: r.Change,
	}
}
