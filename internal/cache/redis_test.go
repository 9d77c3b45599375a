package cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) (port.ProductCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisProductCache(client, ttl), mr
}

func coffee() domain.Product {
	category := int64(4)
	return domain.Product{
		ID:          12,
		Code:        "7421000123456",
		Name:        "Café Maya 400g",
		Price:       domain.Lempiras(decimal.RequireFromString("89.50")),
		TaxCategory: domain.TaxISV15,
		Stock:       decimal.RequireFromString("12.5"),
		CategoryID:  &category,
		Active:      true,
	}
}

func TestProductCache_SetGet(t *testing.T) {
	c, _ := setupCache(t, time.Minute)
	ctx := t.Context()
	want := coffee()

	require.NoError(t, c.Set(ctx, want.Code, want))

	got, err := c.Get(ctx, want.Code)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.Price.Amount.Equal(got.Price.Amount))
	assert.Equal(t, domain.Lempira, got.Price.Currency)
	assert.True(t, want.Stock.Equal(got.Stock))
	assert.Equal(t, domain.TaxISV15, got.TaxCategory)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, int64(4), *got.CategoryID)
}

func TestProductCache_Miss(t *testing.T) {
	c, _ := setupCache(t, time.Minute)

	_, err := c.Get(t.Context(), "000001")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_Corrupt(t *testing.T) {
	c, mr := setupCache(t, time.Minute)
	require.NoError(t, mr.Set(productKey("000002"), `{"id":`))

	_, err := c.Get(t.Context(), "000002")
	require.ErrorContains(t, err, "unmarshal product")
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_TTL(t *testing.T) {
	c, mr := setupCache(t, 5*time.Minute)
	p := coffee()

	require.NoError(t, c.Set(t.Context(), p.Code, p))

	ttl := mr.TTL(productKey(p.Code))
	assert.GreaterOrEqual(t, ttl, 5*time.Minute)
	assert.Less(t, ttl, 6*time.Minute)

	mr.FastForward(6 * time.Minute)
	_, err := c.Get(t.Context(), p.Code)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_Delete(t *testing.T) {
	c, mr := setupCache(t, time.Minute)
	ctx := t.Context()
	p := coffee()

	require.NoError(t, c.Set(ctx, p.Code, p))
	require.NoError(t, c.Set(ctx, "000012", p))

	require.NoError(t, c.Delete(ctx, p.Code, "000012", "missing"))
	assert.False(t, mr.Exists(productKey(p.Code)))
	assert.False(t, mr.Exists(productKey("000012")))

	assert.NoError(t, c.Delete(ctx))
}

func TestProductCache_DeleteProducts(t *testing.T) {
	c, mr := setupCache(t, time.Minute)
	ctx := t.Context()
	p := coffee()
	other := coffee()
	other.ID = 13
	other.Code = "7421000999999"

	require.NoError(t, c.Set(ctx, p.Code, p))
	require.NoError(t, c.Set(ctx, "7501234567890", p))
	require.NoError(t, c.Set(ctx, "12", p))
	require.NoError(t, c.Set(ctx, other.Code, other))

	members, err := mr.Members(aliasKey(p.ID))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{p.Code, "7501234567890", "12"}, members)

	require.NoError(t, c.DeleteProducts(ctx, p.ID, 99))

	for _, code := range []string{p.Code, "7501234567890", "12"} {
		_, err := c.Get(ctx, code)
		assert.ErrorIs(t, err, ErrCacheMiss, code)
	}
	assert.False(t, mr.Exists(aliasKey(p.ID)))

	got, err := c.Get(ctx, other.Code)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)

	assert.NoError(t, c.DeleteProducts(ctx))
}

func TestProductKey(t *testing.T) {
	assert.Equal(t, "product:000123", productKey("000123"))
	assert.Equal(t, "product-codes:12", aliasKey(12))
}
