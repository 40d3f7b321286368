package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"storefront/internal/catalog/app"
	"storefront/internal/storage"
)

func newMockRepo(t *testing.T) (*ProductRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewProductRepo(db), mock
}

func TestDecrementStock(t *testing.T) {
	updateSQL := regexp.QuoteMeta(`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`)
	existsSQL := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`)

	t.Run("success", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.NewString()

		mock.ExpectExec(updateSQL).
			WithArgs(id, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.DecrementStock(context.Background(), id, 3); err != nil {
			t.Fatalf("DecrementStock failed: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.NewString()

		mock.ExpectExec(updateSQL).
			WithArgs(id, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsSQL).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.DecrementStock(context.Background(), id, 5)
		var stockErr *app.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected InsufficientStockError, got %v", err)
		}
		if stockErr.ProductID != id {
			t.Fatalf("expected product %s in error, got %s", id, stockErr.ProductID)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.NewString()

		mock.ExpectExec(updateSQL).
			WithArgs(id, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(existsSQL).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		if err := repo.DecrementStock(context.Background(), id, 1); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, _ := newMockRepo(t)
		if err := repo.DecrementStock(context.Background(), "not-a-uuid", 1); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGetProduct(t *testing.T) {
	selectSQL := regexp.QuoteMeta(`SELECT id, name, description, brand, price_amount, currency, stock, active, created_at, updated_at FROM products WHERE id = $1`)

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(selectSQL).
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "name", "description", "brand", "price_amount", "currency", "stock", "active", "created_at", "updated_at",
			}).AddRow(id.String(), "Widget", "desc", "Acme", int64(1000), "USD", int64(7), true, now, now))

		p, err := repo.Get(context.Background(), id.String())
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if p.ID != id.String() || p.Price.Amount != 1000 || p.Stock != 7 {
			t.Fatalf("unexpected product: %+v", p)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.NewString()

		mock.ExpectQuery(selectSQL).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		if _, err := repo.Get(context.Background(), id); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
