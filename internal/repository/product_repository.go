package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/caja-isv/internal/db"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
)

type productRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		pool: nil,
	}
}

// GetByCode resolves a scanned or typed code: primary barcode first, then
// alternate barcodes, then a six-digit shelf code holding the product id.
// Inactive products are never returned.
func (r *productRepository) GetByCode(ctx context.Context, code string) (domain.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Product{}, fmt.Errorf("code is empty")
	}

	row, err := r.q.GetActiveProductByBarcode(ctx, code)
	if err == nil {
		return mapProductToDomain(row), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("q.GetActiveProductByBarcode: %w", err)
	}

	row, err = r.q.GetActiveProductByAltBarcode(ctx, code)
	if err == nil {
		return mapProductToDomain(row), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("q.GetActiveProductByAltBarcode: %w", err)
	}

	id, ok := domain.ShortCodeID(code)
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}

	row, err = r.q.GetActiveProductByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetActiveProductByID: %w", err)
	}

	return mapProductToDomain(row), nil
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error) {
	filter = filter.Normalize()
	query := strings.TrimSpace(filter.Query)
	categoryID := optionalInt8(filter.CategoryID)

	rows, err := r.q.ListProducts(ctx, db.ListProductsParams{
		Status:     string(filter.Status),
		Query:      query,
		CategoryID: categoryID,
		RowLimit:   int32(filter.Limit),
		RowOffset:  int32(filter.Offset),
	})
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("q.ListProducts: %w", err)
	}

	total, err := r.q.CountProducts(ctx, db.CountProductsParams{
		Status:     string(filter.Status),
		Query:      query,
		CategoryID: categoryID,
	})
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("q.CountProducts: %w", err)
	}

	items := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapProductToDomain(row))
	}

	return domain.ProductPage{Items: items, Total: total}, nil
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return domain.Product{}, fmt.Errorf("%w: name is empty", domain.ErrInvalidProduct)
	}
	if !product.TaxCategory.Valid() {
		return domain.Product{}, fmt.Errorf("%w: tax category %d is not valid", domain.ErrInvalidProduct, int(product.TaxCategory))
	}
	if !product.Price.Amount.Equal(product.Price.Amount.Round(domain.PriceScale)) {
		return domain.Product{}, fmt.Errorf("%w: price %s has more than %d decimals", domain.ErrInvalidProduct, product.Price.Amount, domain.PriceScale)
	}
	if !product.Stock.Equal(product.Stock.Round(domain.QuantityScale)) {
		return domain.Product{}, fmt.Errorf("%w: stock %s has more than %d decimals", domain.ErrInvalidProduct, product.Stock, domain.QuantityScale)
	}

	id, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		Barcode:     optionalText(product.Code),
		Name:        product.Name,
		Price:       product.Price.Amount,
		TaxCategory: int16(product.TaxCategory),
		Stock:       product.Stock,
		Weighed:     product.Weighed,
		CategoryID:  optionalInt8(product.CategoryID),
		Active:      product.Active,
	})
	if isUniqueViolation(err) {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrBarcodeTaken, product.Code)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
	}

	product.ID = id
	if product.Code == "" {
		product.Code = shortCode(id)
	}
	product.Price.Currency = domain.Lempira

	return product, nil
}

func (r *productRepository) AddBarcode(ctx context.Context, productID int64, barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return fmt.Errorf("%w: barcode is empty", domain.ErrInvalidProduct)
	}

	owner, err := r.q.GetActiveProductByBarcode(ctx, barcode)
	if err == nil && owner.ID != productID {
		return fmt.Errorf("%w: %s", domain.ErrBarcodeTaken, barcode)
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("q.GetActiveProductByBarcode: %w", err)
	}

	err = r.q.AddProductBarcode(ctx, db.AddProductBarcodeParams{
		ProductID: productID,
		Barcode:   barcode,
	})
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %s", domain.ErrBarcodeTaken, barcode)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, productID)
	case err != nil:
		return fmt.Errorf("q.AddProductBarcode: %w", err)
	}

	return nil
}

func mapProductToDomain(row db.Product) domain.Product {
	code := row.Barcode.String
	if !row.Barcode.Valid || code == "" {
		code = shortCode(row.ID)
	}

	var categoryID *int64
	if row.CategoryID.Valid {
		id := row.CategoryID.Int64
		categoryID = &id
	}

	return domain.Product{
		ID:          row.ID,
		Code:        code,
		Name:        row.Name,
		Price:       domain.Lempiras(row.Price),
		TaxCategory: domain.TaxCategory(row.TaxCategory),
		Stock:       row.Stock,
		Weighed:     row.Weighed,
		CategoryID:  categoryID,
		Active:      row.Active,
	}
}

// products without a barcode are rung up by their six-digit shelf code
func shortCode(id int64) string {
	return fmt.Sprintf("%06d", id)
}

// saleLookupID is the id a sold code may refer to: any all-digit code, so
// both "123" and "000123" match product 123.
func saleLookupID(code string) pgtype.Int8 {
	id, err := strconv.ParseInt(code, 10, 64)
	if err != nil || id <= 0 {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: id, Valid: true}
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func optionalInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}
