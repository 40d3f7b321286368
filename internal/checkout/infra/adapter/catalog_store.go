package adapter

import (
	"context"

	catalogapp "storefront/internal/catalog/app"
	checkoutapp "storefront/internal/checkout/app"
)

type CatalogServiceStore struct {
	svc *catalogapp.Service
}

func NewCatalogServiceStore(svc *catalogapp.Service) *CatalogServiceStore {
	return &CatalogServiceStore{svc: svc}
}

func (s *CatalogServiceStore) GetProduct(ctx context.Context, productID string) (checkoutapp.Product, error) {
	p, err := s.svc.GetProduct(ctx, productID)
	if err != nil {
		return checkoutapp.Product{}, err
	}

	return checkoutapp.Product{
		ID:       p.ID,
		Name:     p.Name,
		Currency: p.Price.Currency,
		Amount:   p.Price.Amount,
	}, nil
}

func (s *CatalogServiceStore) DecrementStock(ctx context.Context, productID string, qty int64) error {
	return s.svc.DecrementStock(ctx, productID, qty)
}
