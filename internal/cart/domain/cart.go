package domain

import "time"

type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int64
}

// Cart is the per-user pre-purchase collection. There is at most one per
// user; it is created lazily and survives checkout with its items cleared.
type Cart struct {
	ID        string
	UserID    string
	TaxAmount int64
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}
