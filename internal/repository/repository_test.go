package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_products.up.sql",
			"../migrations/02_customers.up.sql",
			"../migrations/03_sales.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func stopPostgres(t *testing.T, container *postgres.PostgresContainer) {
	if err := testcontainers.TerminateContainer(container); err != nil {
		t.Logf("terminate postgres: %v", err)
	}
}

func randomProduct(category domain.TaxCategory) domain.Product {
	return domain.Product{
		Code:        gofakeit.Numerify("7421#########"),
		Name:        gofakeit.ProductName(),
		Price:       domain.Lempiras(decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2)),
		TaxCategory: category,
		Stock:       decimal.NewFromInt(int64(gofakeit.IntRange(10, 100))),
		Active:      true,
	}
}
