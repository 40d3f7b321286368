package adapter

import (
	"context"

	orderapp "storefront/internal/order/app"
)

type OrderServiceStore struct {
	svc *orderapp.Service
}

func NewOrderServiceStore(svc *orderapp.Service) *OrderServiceStore {
	return &OrderServiceStore{svc: svc}
}

func (s *OrderServiceStore) CreateOrder(ctx context.Context, userID, currency string) (string, error) {
	o, err := s.svc.Create(ctx, userID, currency)
	if err != nil {
		return "", err
	}
	return o.ID, nil
}

func (s *OrderServiceStore) AddOrderItem(ctx context.Context, orderID, productID string, qty, unitAmount int64) error {
	_, err := s.svc.AddItem(ctx, orderID, productID, qty, unitAmount)
	return err
}
