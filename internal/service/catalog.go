package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nikolayk812/caja-isv/internal/cache"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/obs"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type CatalogConfig struct {
	Products port.ProductRepository
	// Cache is optional.
	Cache   port.ProductCache
	Metrics *obs.SalesMetrics
	Logger  zerolog.Logger
}

type Catalog struct {
	products port.ProductRepository
	cache    port.ProductCache
	metrics  *obs.SalesMetrics
	logger   zerolog.Logger
	sfg      singleflight.Group
}

func NewCatalog(cfg CatalogConfig) *Catalog {
	return &Catalog{
		products: cfg.Products,
		cache:    cfg.Cache,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}
}

// Lookup resolves a scanned code to an active product, reading through the cache.
func (s *Catalog) Lookup(ctx context.Context, code string) (domain.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Product{}, domain.ErrProductNotFound
	}

	v, err, _ := s.sfg.Do(code, func() (any, error) {
		if s.cache != nil {
			product, err := s.cache.Get(ctx, code)
			if err == nil {
				s.metrics.CacheResult("hit")
				return product, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				s.metrics.CacheResult("error")
				s.logger.Warn().Err(err).Str("code", code).Msg("product cache get")
			} else {
				s.metrics.CacheResult("miss")
			}
		}

		product, err := s.products.GetByCode(ctx, code)
		if err != nil {
			return domain.Product{}, err
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, code, product); err != nil {
				s.logger.Warn().Err(err).Str("code", code).Msg("product cache set")
			}
		}

		return product, nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return v.(domain.Product), nil
}

func (s *Catalog) List(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	return s.products.List(ctx, filter.Normalize())
}

func (s *Catalog) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := s.products.Create(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.Invalidate(created.Code)
	return created, nil
}

func (s *Catalog) AddBarcode(ctx context.Context, productID int64, barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if err := s.products.AddBarcode(ctx, productID, barcode); err != nil {
		return err
	}

	s.Invalidate(barcode)
	return nil
}

// Invalidate drops cached lookups of codes. Failures are logged only.
func (s *Catalog) Invalidate(codes ...string) {
	if s.cache == nil || len(codes) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.cache.Delete(ctx, codes...); err != nil {
		s.logger.Warn().Err(err).Strs("codes", codes).Msg("product cache invalidate")
	}
}

// InvalidateProducts drops every cached code of the given products, including
// alternate barcodes and unpadded ids they were scanned as.
func (s *Catalog) InvalidateProducts(ids ...int64) {
	if s.cache == nil || len(ids) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.cache.DeleteProducts(ctx, ids...); err != nil {
		s.logger.Warn().Err(err).Ints64("product_ids", ids).Msg("product cache invalidate")
	}
}
