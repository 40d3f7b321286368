package app

import (
	"context"

	"storefront/internal/cart/domain"
)

type CartRepo interface {
	// GetOrCreate resolves the user's single cart, creating it on first
	// access. Implementations must be safe under concurrent first access
	// (unique owning-user key plus retry on conflict).
	GetOrCreate(ctx context.Context, userID string) (domain.Cart, error)
	Get(ctx context.Context, userID string) (domain.Cart, error)

	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	// AddItem upserts: an existing (cart, product) row has its quantity
	// incremented rather than duplicated.
	AddItem(ctx context.Context, cartID, productID string, qty int64) error
	RemoveItem(ctx context.Context, cartID, productID string) error
	// SetItemQuantity and DeleteItem address a line by its id but only
	// within the given user's cart; a line owned by someone else is not
	// found.
	SetItemQuantity(ctx context.Context, userID, itemID string, qty int64) error
	DeleteItem(ctx context.Context, userID, itemID string) error
	ClearItems(ctx context.Context, cartID string) error
}

// ProductInfo is the slice of the catalog the cart needs for validation.
type ProductInfo struct {
	ID     string
	Active bool
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (ProductInfo, error)
}
