package app

import (
	"context"

	"storefront/internal/order/domain"
)

type OrderRepo interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	AddItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error)
}
