package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/caja-isv/internal/db"
	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
)

type customerRepository struct {
	q *db.Queries
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{q: db.New(pool)}
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.q.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListCustomers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, domain.Customer{
			ID:   row.ID,
			RTN:  row.Rtn.String,
			Name: row.Name,
		})
	}

	return customers, nil
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.RTN = strings.TrimSpace(customer.RTN)
	if customer.Name == "" {
		return domain.Customer{}, fmt.Errorf("%w: name is empty", domain.ErrInvalidCustomer)
	}

	id, err := r.q.CreateCustomer(ctx, db.CreateCustomerParams{
		Rtn:  optionalText(customer.RTN),
		Name: customer.Name,
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("q.CreateCustomer: %w", err)
	}

	customer.ID = id
	return customer, nil
}
