package domain

import "time"

// Money is a fixed-point amount in the currency's minor unit (cents).
type Money struct {
	Currency string
	Amount   int64
}

type Product struct {
	ID          string
	Name        string
	Description string
	Brand       string
	Price       Money
	Stock       int64
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
