package service

import (
	"errors"
	"testing"

	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/obs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beans() domain.Product {
	return domain.Product{
		ID:          7,
		Code:        "7421000111222",
		Name:        "Frijoles rojos 1lb",
		Price:       domain.Lempiras(decimal.RequireFromString("32.00")),
		TaxCategory: domain.TaxExempt,
		Stock:       decimal.NewFromInt(40),
		Active:      true,
	}
}

func newTestCatalog(products *fakeProducts, c *fakeCache) (*Catalog, *obs.SalesMetrics) {
	metrics := obs.NewSalesMetrics("test", prometheus.NewRegistry())
	cfg := CatalogConfig{Products: products, Metrics: metrics, Logger: zerolog.Nop()}
	if c != nil {
		cfg.Cache = c
	}
	return NewCatalog(cfg), metrics
}

func TestCatalogLookup_ReadThrough(t *testing.T) {
	products := newFakeProducts(beans())
	c := newFakeCache()
	catalog, metrics := newTestCatalog(products, c)

	got, err := catalog.Lookup(t.Context(), " 7421000111222 ")
	require.NoError(t, err)
	assert.Equal(t, "Frijoles rojos 1lb", got.Name)
	assert.True(t, c.has("7421000111222"))

	got, err = catalog.Lookup(t.Context(), "7421000111222")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	assert.Equal(t, 1, products.lookupCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
}

func TestCatalogLookup_NotFoundIsNotCached(t *testing.T) {
	products := newFakeProducts()
	c := newFakeCache()
	catalog, _ := newTestCatalog(products, c)

	_, err := catalog.Lookup(t.Context(), "000999")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.False(t, c.has("000999"))

	_, err = catalog.Lookup(t.Context(), "   ")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 1, products.lookupCount())
}

func TestCatalogLookup_CacheDownFallsBack(t *testing.T) {
	products := newFakeProducts(beans())
	c := newFakeCache()
	c.getErr = errors.New("connection refused")
	catalog, metrics := newTestCatalog(products, c)

	got, err := catalog.Lookup(t.Context(), beans().Code)
	require.NoError(t, err)
	assert.Equal(t, beans().Code, got.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("error")))
}

func TestCatalogLookup_WithoutCache(t *testing.T) {
	products := newFakeProducts(beans())
	catalog, _ := newTestCatalog(products, nil)

	for range 3 {
		_, err := catalog.Lookup(t.Context(), beans().Code)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, products.lookupCount())
	assert.NotPanics(t, func() { catalog.Invalidate("x") })
}

func TestCatalogList_Normalizes(t *testing.T) {
	products := newFakeProducts(beans())
	catalog, _ := newTestCatalog(products, nil)

	page, err := catalog.List(t.Context(), domain.ProductFilter{Limit: -5})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
}

func TestCatalogCreateAndBarcode_Invalidate(t *testing.T) {
	products := newFakeProducts()
	c := newFakeCache()
	catalog, _ := newTestCatalog(products, c)

	created, err := catalog.Create(t.Context(), beans())
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	require.NoError(t, catalog.AddBarcode(t.Context(), created.ID, " 7501234567890 "))
	assert.Equal(t, created.ID, products.barcodes["7501234567890"])

	assert.Equal(t, []string{beans().Code, "7501234567890"}, c.deleted)
}

func TestCatalogAddBarcode_Error(t *testing.T) {
	products := newFakeProducts()
	products.err = errors.New("duplicate key")
	c := newFakeCache()
	catalog, _ := newTestCatalog(products, c)

	err := catalog.AddBarcode(t.Context(), 1, "123")
	require.EqualError(t, err, "duplicate key")
	assert.Empty(t, c.deleted)
}
