package domain

import "time"

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses admit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether an administrative move from s to to is
// allowed: Pending -> Processing -> Completed, or Cancelled from any
// non-terminal status.
func (s Status) CanTransition(to Status) bool {
	if s.Terminal() {
		return false
	}
	switch to {
	case StatusProcessing:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusProcessing
	case StatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	// UnitAmount is the product's price captured when the order was placed.
	// It is never recomputed from the catalog.
	UnitAmount int64
}

func (it OrderItem) LineTotal() int64 {
	return it.UnitAmount * it.Quantity
}

type Order struct {
	ID        string
	UserID    string
	Status    Status
	Currency  string
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Order) TotalAmount() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.LineTotal()
	}
	return total
}

func (o Order) TotalItems() int64 {
	var n int64
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
