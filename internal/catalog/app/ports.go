package app

import (
	"context"

	"storefront/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error)

	// DecrementStock atomically subtracts qty from the product's stock,
	// failing without effect when the remaining stock is insufficient.
	DecrementStock(ctx context.Context, productID string, qty int64) error
	IncrementStock(ctx context.Context, productID string, qty int64) error
}
