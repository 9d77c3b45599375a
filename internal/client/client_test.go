package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/caja-isv/internal/client"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/wire"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func newAPI(t *testing.T, h http.HandlerFunc) (*httptest.Server, func() *http.Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, func() *http.Client {
		c := srv.Client()
		t.Cleanup(c.CloseIdleConnections)
		return c
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLookupProduct(t *testing.T) {
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/producto/7421000123456":
			writeJSON(w, http.StatusOK, wire.Product{
				ID: 3, Code: "7421000123456", Name: "Café Maya 400g",
				Price: decimal.RequireFromString("89.50"), TaxCategory: 1, Stock: decimal.NewFromInt(4),
			})
		case "/api/producto/broken":
			writeJSON(w, http.StatusInternalServerError, wire.Error{Error: "Error interno", Code: "INTERNAL"})
		default:
			writeJSON(w, http.StatusNotFound, wire.Error{Error: "Producto no encontrado", Code: "NOT_FOUND"})
		}
	})
	api := client.New(srv.URL+"/", httpClient(), 0)

	p, err := api.LookupProduct(t.Context(), " 7421000123456 ")
	require.NoError(t, err)
	assert.Equal(t, "Café Maya 400g", p.Name)
	assert.Equal(t, domain.TaxISV15, p.TaxCategory)
	assert.Equal(t, "L 89.50", p.Price.String())

	_, err = api.LookupProduct(t.Context(), "000999")
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = api.LookupProduct(t.Context(), "   ")
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = api.LookupProduct(t.Context(), "broken")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "INTERNAL", apiErr.Code)
	assert.Equal(t, "Error interno", apiErr.Message)
}

func TestListProducts(t *testing.T) {
	var gotQuery string
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set(wire.TotalCountHeader, "250")
		writeJSON(w, http.StatusOK, []wire.Product{{ID: 1, Code: "A", Name: "Arroz", TaxCategory: 3}})
	})
	api := client.New(srv.URL, httpClient(), 0)

	category := int64(2)
	page, err := api.ListProducts(t.Context(), domain.ProductFilter{
		Query: "arr", Status: domain.ProductsAll, CategoryID: &category, Limit: 1, Offset: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "categoria_id=2&estado=todos&limit=1&offset=10&q=arr", gotQuery)
	assert.Equal(t, int64(250), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domain.TaxExempt, page.Items[0].TaxCategory)
}

func TestListCustomers(t *testing.T) {
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []wire.Customer{{ID: 1, Name: "Ana Mejía", RTN: "0801199000011"}})
	})
	api := client.New(srv.URL, httpClient(), 0)

	customers, err := api.ListCustomers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []domain.Customer{{ID: 1, Name: "Ana Mejía", RTN: "0801199000011"}}, customers)
}

func TestLastInvoiceID(t *testing.T) {
	var last *int64
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, wire.LastInvoice{ID: last})
	})
	api := client.New(srv.URL, httpClient(), 0)

	_, ok, err := api.LastInvoiceID(t.Context())
	require.NoError(t, err)
	assert.False(t, ok)

	id := int64(41)
	last = &id
	got, ok, err := api.LastInvoiceID(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(41), got)
}

func TestRegisterSale(t *testing.T) {
	var (
		gotKey  string
		gotBody map[string]any
	)
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(wire.IdempotencyHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, wire.SaleResponse{
			OK: true, InvoiceID: 9, InvoiceNumber: "001-001-01-00000009",
			Totals: wire.Totals{Exempt: decimal.NewFromInt(20), Total: decimal.NewFromInt(20)},
			Cash:   decimal.NewFromInt(20),
		})
	})
	api := client.New(srv.URL, httpClient(), 0)

	requestID := uuid.New()
	sale := domain.Sale{
		RequestID:    requestID,
		CustomerName: "Ana Mejía",
		Items: []domain.CartItem{{
			Code: "X", Description: "Arroz", Price: domain.Lempiras(decimal.NewFromInt(10)),
			Quantity: decimal.NewFromInt(2), TaxCategory: domain.TaxExempt,
		}},
	}

	receipt, err := api.RegisterSale(t.Context(), sale)
	require.NoError(t, err)
	assert.Equal(t, int64(9), receipt.InvoiceID)
	assert.Equal(t, "001-001-01-00000009", receipt.InvoiceNumber)
	assert.True(t, receipt.Totals.Total.Equal(decimal.NewFromInt(20)))

	assert.Equal(t, requestID.String(), gotKey)
	assert.Equal(t, "Ana Mejía", gotBody["cliente_nombre"])
	items, ok := gotBody["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "X", item["codigo"])
	assert.InDelta(t, 10, item["precio"], 0)
	assert.InDelta(t, 3, item["id_isv"], 0)

	sale.RequestID = uuid.Nil
	_, err = api.RegisterSale(t.Context(), sale)
	require.NoError(t, err)
	_, err = uuid.Parse(gotKey)
	require.NoError(t, err)
	assert.NotEqual(t, requestID.String(), gotKey)
}

func TestRegisterSale_Rejected(t *testing.T) {
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, wire.Error{Error: "Stock insuficiente para X (disp: 1)", Code: "INSUFFICIENT_STOCK"})
	})
	api := client.New(srv.URL, httpClient(), 0)

	_, err := api.RegisterSale(t.Context(), domain.Sale{})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Stock insuficiente para X (disp: 1)", apiErr.Message)
}

func TestPrintableInvoice(t *testing.T) {
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/factura/imprimir/9" {
			writeJSON(w, http.StatusNotFound, wire.Error{Error: "Factura no encontrada", Code: "NOT_FOUND"})
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "FACTURA 9\n")
	})
	api := client.New(srv.URL, httpClient(), 0)

	doc, err := api.PrintableInvoice(t.Context(), 9)
	require.NoError(t, err)
	assert.Equal(t, "FACTURA 9\n", string(doc))

	_, err = api.PrintableInvoice(t.Context(), 10)
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestPlainTextError(t *testing.T) {
	srv, httpClient := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})
	api := client.New(srv.URL, httpClient(), 0)

	_, err := api.ListCustomers(t.Context())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad gateway", apiErr.Message)
	assert.Equal(t, "api 502: bad gateway", apiErr.Error())
}
