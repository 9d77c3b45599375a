package shell_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/printer"
	"github.com/nikolayk812/caja-isv/internal/register"
	"github.com/nikolayk812/caja-isv/internal/shell"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	sales []domain.Sale
}

func (s *stubAPI) ListCustomers(context.Context) ([]domain.Customer, error) {
	return []domain.Customer{{ID: 1, Name: "Ana Mejía", RTN: "0801199000011"}}, nil
}

func (s *stubAPI) ListProducts(context.Context, domain.ProductFilter) (domain.ProductPage, error) {
	return domain.ProductPage{Items: []domain.Product{rice()}, Total: 3}, nil
}

func (s *stubAPI) LookupProduct(_ context.Context, code string) (domain.Product, error) {
	if code != rice().Code {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return rice(), nil
}

func (s *stubAPI) LastInvoiceID(context.Context) (int64, bool, error) {
	return 0, false, nil
}

func (s *stubAPI) RegisterSale(_ context.Context, sale domain.Sale) (domain.SaleReceipt, error) {
	s.sales = append(s.sales, sale)
	totals := domain.ComputeTaxes(sale.Items).Rounded()
	cash, change := sale.Settle(totals.Total)
	return domain.SaleReceipt{
		InvoiceID: int64(len(s.sales)), InvoiceNumber: fmt.Sprintf("001-001-01-%08d", len(s.sales)),
		Totals: totals, Cash: cash, Change: change,
	}, nil
}

func (s *stubAPI) PrintableInvoice(_ context.Context, id int64) ([]byte, error) {
	return fmt.Appendf(nil, "<<FACTURA %d>>", id), nil
}

func rice() domain.Product {
	return domain.Product{ID: 1, Code: "X", Name: "Arroz 1lb", Price: domain.Lempiras(decimal.NewFromInt(10)), TaxCategory: domain.TaxExempt}
}

func run(t *testing.T, input string) (string, *stubAPI) {
	t.Helper()

	api := &stubAPI{}
	var out bytes.Buffer
	reg := register.New(register.Config{API: api, Printer: printer.NewWriterPrinter(&out), Logger: zerolog.Nop()})

	require.NoError(t, shell.New(reg, strings.NewReader(input), &out).Run(t.Context()))
	return out.String(), api
}

func TestSale(t *testing.T) {
	out, api := run(t, strings.Join([]string{
		"agregar X 2",
		"agregar Y 1 23 1 Jabón de baño",
		"pagar 50 ana mejía",
		"salir",
		"carrito",
	}, "\n"))

	assert.Contains(t, out, "Jabón de baño")
	assert.Regexp(t, `Exento\s+L 20.00`, out)
	assert.Regexp(t, `ISV 15%\s+L 3.00`, out)
	assert.Regexp(t, `TOTAL\s+L 43.00`, out)
	assert.Regexp(t, `Cambio\s+L 7.00`, out)
	assert.Contains(t, out, "<<FACTURA 1>>")
	assert.NotContains(t, out, "Carrito vacío")

	require.Len(t, api.sales, 1)
	assert.Equal(t, "Ana Mejía", api.sales[0].CustomerName)
	assert.Equal(t, "0801199000011", api.sales[0].CustomerRTN)
	assert.True(t, api.sales[0].Cash.Equal(decimal.NewFromInt(50)))
}

func TestErrors(t *testing.T) {
	out, api := run(t, strings.Join([]string{
		"pagar",
		"buscar Z",
		"quitar 3",
		"reimprimir",
		"agregar X 0,5x",
		"volar",
	}, "\n"))

	assert.Contains(t, out, "Error: No hay artículos por pagar")
	assert.Contains(t, out, "Error: Producto no encontrado")
	assert.Contains(t, out, "Error: Línea inexistente")
	assert.Contains(t, out, "Error: No hay factura para reimprimir")
	assert.Contains(t, out, `Error: cantidad inválido "0,5x"`)
	assert.Contains(t, out, `Error: comando desconocido "volar"`)
	assert.Empty(t, api.sales)
}

func TestListings(t *testing.T) {
	out, _ := run(t, "clientes\nproductos arr\nbuscar X\nagregar X\nquitar 1\n")

	assert.Regexp(t, `1\s+Ana Mejía\s+0801199000011`, out)
	assert.Regexp(t, `X\s+Arroz 1lb\s+L 10.00\s+exento`, out)
	assert.Contains(t, out, "(1 de 3)")
	assert.Contains(t, out, "Carrito vacío")
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	reg := register.New(register.Config{API: &stubAPI{}, Printer: printer.NewWriterPrinter(&bytes.Buffer{}), Logger: zerolog.Nop()})
	err := shell.New(reg, strings.NewReader("carrito\n"), &bytes.Buffer{}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
