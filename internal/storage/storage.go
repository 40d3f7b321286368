package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict marks a transaction aborted by concurrent modification.
// Callers may retry the whole transaction a bounded number of times.
var ErrConflict = errors.New("concurrency conflict")

// TxManager runs fn inside one atomic unit of work. Either every write made
// through ctx-aware repositories commits, or none are visible.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
