package app

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

// InsufficientStockError names the product whose stock could not cover the
// requested quantity, so callers can render an actionable message.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}
