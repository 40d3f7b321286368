package app

import (
	"context"
	"strings"

	"storefront/internal/catalog/domain"
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

type CreateProductInput struct {
	Name        string
	Description string
	Brand       string
	Currency    string
	Amount      int64
	Stock       int64
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Currency = strings.TrimSpace(in.Currency)

	if in.Name == "" || in.Currency == "" || in.Amount <= 0 || in.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Brand:       in.Brand,
		Price: domain.Money{
			Currency: in.Currency,
			Amount:   in.Amount,
		},
		Stock:  in.Stock,
		Active: true,
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.ID == "" || p.Name == "" || p.Price.Amount <= 0 || p.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, query, limit, cursor)
}

func (s *Service) DecrementStock(ctx context.Context, productID string, qty int64) error {
	if productID == "" || qty <= 0 {
		return ErrInvalidInput
	}
	return s.repo.DecrementStock(ctx, productID, qty)
}

// IncrementStock restores stock, e.g. for cancellations and returns.
func (s *Service) IncrementStock(ctx context.Context, productID string, qty int64) error {
	if productID == "" || qty <= 0 {
		return ErrInvalidInput
	}
	return s.repo.IncrementStock(ctx, productID, qty)
}
