// Package client talks to the sales API on behalf of a register.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/nikolayk812/caja-isv/internal/wire"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIError is a non-2xx answer from the sales API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api %d: %s", e.StatusCode, e.Message)
}

type client struct {
	baseURL string
	http    *http.Client
}

// New returns a SalesAPI for baseURL. A nil httpClient gets a traced client
// with the given timeout.
func New(baseURL string, httpClient *http.Client, timeout time.Duration) port.SalesAPI {
	if httpClient == nil {
		httpClient = HTTPClient(timeout)
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// HTTPClient returns an http.Client whose transport propagates trace context.
func HTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(transport),
	}
}

func (c *client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []wire.Customer
	if _, err := c.getJSON(ctx, "/api/clientes", nil, &out); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(out))
	for _, cu := range out {
		customers = append(customers, cu.Domain())
	}
	return customers, nil
}

func (c *client) ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	query := url.Values{}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.Status != "" {
		query.Set("estado", string(filter.Status))
	}
	if filter.CategoryID != nil {
		query.Set("categoria_id", strconv.FormatInt(*filter.CategoryID, 10))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var out []wire.Product
	header, err := c.getJSON(ctx, "/api/productos", query, &out)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("list products: %w", err)
	}

	page := domain.ProductPage{Items: make([]domain.Product, 0, len(out))}
	for _, p := range out {
		page.Items = append(page.Items, p.Domain())
	}
	page.Total = int64(len(page.Items))
	if v := header.Get(wire.TotalCountHeader); v != "" {
		if total, err := strconv.ParseInt(v, 10, 64); err == nil {
			page.Total = total
		}
	}
	return page, nil
}

func (c *client) LookupProduct(ctx context.Context, code string) (domain.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Product{}, domain.ErrProductNotFound
	}

	var out wire.Product
	if _, err := c.getJSON(ctx, "/api/producto/"+url.PathEscape(code), nil, &out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, code)
		}
		return domain.Product{}, fmt.Errorf("lookup product %s: %w", code, err)
	}
	return out.Domain(), nil
}

func (c *client) LastInvoiceID(ctx context.Context) (int64, bool, error) {
	var out wire.LastInvoice
	if _, err := c.getJSON(ctx, "/api/ultima-factura", nil, &out); err != nil {
		return 0, false, fmt.Errorf("last invoice: %w", err)
	}
	if out.ID == nil {
		return 0, false, nil
	}
	return *out.ID, true, nil
}

// RegisterSale posts the sale with an Idempotency-Key so a retried
// submission never registers twice. A sale without RequestID gets a fresh one.
func (c *client) RegisterSale(ctx context.Context, sale domain.Sale) (domain.SaleReceipt, error) {
	requestID := sale.RequestID
	if requestID == uuid.Nil {
		requestID = uuid.New()
	}

	body, err := json.Marshal(wire.FromSale(sale))
	if err != nil {
		return domain.SaleReceipt{}, fmt.Errorf("marshal sale: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/registrar-venta", bytes.NewReader(body))
	if err != nil {
		return domain.SaleReceipt{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(wire.IdempotencyHeader, requestID.String())

	var out wire.SaleResponse
	if _, err := c.do(req, &out); err != nil {
		return domain.SaleReceipt{}, fmt.Errorf("register sale: %w", err)
	}
	return out.Domain(), nil
}

func (c *client) PrintableInvoice(ctx context.Context, id int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/factura/imprimir/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("printable invoice %d: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvoiceNotFound, id)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("printable invoice %d: %w", id, readAPIError(resp))
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read invoice %d: %w", id, err)
	}
	return doc, nil
}

func (c *client) getJSON(ctx context.Context, path string, query url.Values, dst any) (http.Header, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

func (c *client) do(req *http.Request, dst any) (http.Header, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return resp.Header, readAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return resp.Header, fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return resp.Header, nil
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body wire.Error
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
