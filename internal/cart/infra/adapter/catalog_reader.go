package adapter

import (
	"context"

	cartapp "storefront/internal/cart/app"
	catalogapp "storefront/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (cartapp.ProductInfo, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		return cartapp.ProductInfo{}, err
	}
	return cartapp.ProductInfo{ID: p.ID, Active: p.Active}, nil
}
