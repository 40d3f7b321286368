package adapter

import (
	"context"

	cartapp "storefront/internal/cart/app"
	checkoutapp "storefront/internal/checkout/app"
)

type CartServiceStore struct {
	svc *cartapp.Service
}

func NewCartServiceStore(svc *cartapp.Service) *CartServiceStore {
	return &CartServiceStore{svc: svc}
}

func (s *CartServiceStore) GetOrCreateCart(ctx context.Context, userID string) (checkoutapp.Cart, error) {
	cart, err := s.svc.GetOrCreate(ctx, userID)
	if err != nil {
		return checkoutapp.Cart{}, err
	}

	items := make([]checkoutapp.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return checkoutapp.Cart{
		ID:        cart.ID,
		UserID:    cart.UserID,
		TaxAmount: cart.TaxAmount,
		Items:     items,
	}, nil
}

func (s *CartServiceStore) ClearItems(ctx context.Context, cartID string) error {
	return s.svc.ClearItems(ctx, cartID)
}
