package service

import (
	"context"

	"github.com/nikolayk812/caja-isv/internal/domain"
	"github.com/nikolayk812/caja-isv/internal/port"
)

type Customers struct {
	repo port.CustomerRepository
}

func NewCustomers(repo port.CustomerRepository) *Customers {
	return &Customers{repo: repo}
}

func (s *Customers) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *Customers) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	return s.repo.Create(ctx, customer)
}
