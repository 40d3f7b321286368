package app

import (
	"context"
	"errors"

	"storefront/internal/cart/domain"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo    CartRepo
	catalog CatalogReader
}

func NewService(repo CartRepo, catalog CatalogReader) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	if userID == "" {
		return domain.Cart{}, ErrInvalidInput
	}
	return s.repo.GetOrCreate(ctx, userID)
}

// AddItem upserts a product into the user's cart. Inactive products are
// rejected.
func (s *Service) AddItem(ctx context.Context, userID, productID string, qty int64) (domain.Cart, error) {
	if userID == "" || productID == "" || qty <= 0 {
		return domain.Cart{}, ErrInvalidInput
	}

	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !p.Active {
		return domain.Cart{}, ErrInvalidInput
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, productID, qty); err != nil {
		return domain.Cart{}, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" || productID == "" {
		return ErrInvalidInput
	}
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, cart.ID, productID)
}

// SetItemQuantity updates a line in the user's own cart; a quantity below
// one deletes the line. A line id belonging to another user's cart is
// treated as not found.
func (s *Service) SetItemQuantity(ctx context.Context, userID, itemID string, qty int64) error {
	if userID == "" || itemID == "" {
		return ErrInvalidInput
	}
	if qty < 1 {
		return s.repo.DeleteItem(ctx, userID, itemID)
	}
	return s.repo.SetItemQuantity(ctx, userID, itemID, qty)
}

func (s *Service) ClearItems(ctx context.Context, cartID string) error {
	if cartID == "" {
		return ErrInvalidInput
	}
	return s.repo.ClearItems(ctx, cartID)
}
