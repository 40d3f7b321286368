package app

import "context"

// The checkout engine sees its collaborators through narrow local ports so
// it depends on behavior, not on the other contexts' types.

type Cart struct {
	ID        string
	UserID    string
	TaxAmount int64
	Items     []CartItem
}

type CartItem struct {
	ProductID string
	Quantity  int64
}

type CartStore interface {
	// GetOrCreateCart resolves the user's cart; items come back in
	// insertion order.
	GetOrCreateCart(ctx context.Context, userID string) (Cart, error)
	ClearItems(ctx context.Context, cartID string) error
}

type Product struct {
	ID       string
	Name     string
	Currency string
	Amount   int64
}

type Catalog interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
	// DecrementStock fails with catalog's InsufficientStockError when the
	// remaining stock cannot cover qty; the decrement is atomic at the
	// storage layer.
	DecrementStock(ctx context.Context, productID string, qty int64) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, userID, currency string) (string, error)
	AddOrderItem(ctx context.Context, orderID, productID string, qty, unitAmount int64) error
}
