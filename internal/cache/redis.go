package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const DefaultProductTTL = 10 * time.Minute

type productCache struct {
	client  redis.UniversalClient
	baseTTL time.Duration
}

// NewRedisProductCache caches catalog lookups by scanned code. Entries live
// for ttl plus up to a minute of jitter so a warm catalog does not expire at once.
func NewRedisProductCache(client redis.UniversalClient, ttl time.Duration) port.ProductCache {
	if ttl <= 0 {
		ttl = DefaultProductTTL
	}
	return &productCache{
		client:  client,
		baseTTL: ttl,
	}
}

// cachedProduct is the stored form; keys are kept short and stable across releases.
type cachedProduct struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	TaxCategory int             `json:"tax"`
	Stock       decimal.Decimal `json:"stock"`
	Weighed     bool            `json:"weighed,omitempty"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Active      bool            `json:"active"`
}

func (c *productCache) Get(ctx context.Context, code string) (domain.Product, error) {
	data, err := c.client.Get(ctx, productKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Product{}, ErrCacheMiss
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("redis get: %w", err)
	}

	var cached cachedProduct
	if err := json.Unmarshal(data, &cached); err != nil {
		return domain.Product{}, fmt.Errorf("unmarshal product: %w", err)
	}

	return domain.Product{
		ID:          cached.ID,
		Code:        cached.Code,
		Name:        cached.Name,
		Price:       domain.Lempiras(cached.Price),
		TaxCategory: domain.TaxCategory(cached.TaxCategory),
		Stock:       cached.Stock,
		Weighed:     cached.Weighed,
		CategoryID:  cached.CategoryID,
		Active:      cached.Active,
	}, nil
}

func (c *productCache) Set(ctx context.Context, code string, product domain.Product) error {
	data, err := json.Marshal(cachedProduct{
		ID:          product.ID,
		Code:        product.Code,
		Name:        product.Name,
		Price:       product.Price.Amount,
		TaxCategory: int(product.TaxCategory),
		Stock:       product.Stock,
		Weighed:     product.Weighed,
		CategoryID:  product.CategoryID,
		Active:      product.Active,
	})
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	// Every code a product was cached under is remembered so a stock change
	// can drop all of them, alternate barcodes and unpadded ids included.
	ttl := c.ttl()
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, productKey(code), data, ttl)
		pipe.SAdd(ctx, aliasKey(product.ID), code)
		pipe.Expire(ctx, aliasKey(product.ID), ttl+time.Minute)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *productCache) Delete(ctx context.Context, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(codes))
	for _, code := range codes {
		keys = append(keys, productKey(code))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeleteProducts drops every cached code of the given products.
func (c *productCache) DeleteProducts(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}

	var keys []string
	for _, id := range ids {
		codes, err := c.client.SMembers(ctx, aliasKey(id)).Result()
		if err != nil {
			return fmt.Errorf("redis smembers: %w", err)
		}
		for _, code := range codes {
			keys = append(keys, productKey(code))
		}
		keys = append(keys, aliasKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *productCache) ttl() time.Duration {
	return c.baseTTL + time.Duration(rand.Int64N(int64(time.Minute)))
}

func productKey(code string) string {
	return "product:" + code
}

func aliasKey(id int64) string {
	return "product-codes:" + strconv.FormatInt(id, 10)
}
