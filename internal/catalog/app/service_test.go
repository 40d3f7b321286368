package app

import (
	"context"
	"testing"

	"storefront/internal/catalog/domain"
)

type fakeRepo struct{}

func (fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) { return p, nil }
func (fakeRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	return domain.Product{}, nil
}
func (fakeRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	return p, nil
}
func (fakeRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	return nil, "", nil
}
func (fakeRepo) DecrementStock(ctx context.Context, productID string, qty int64) error { return nil }
func (fakeRepo) IncrementStock(ctx context.Context, productID string, qty int64) error { return nil }

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(fakeRepo{})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "   ", Currency: "USD", Amount: 100})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative amount -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Keyboard", Currency: "USD", Amount: -1})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty currency -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Keyboard", Currency: "   ", Amount: 100})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative stock -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Keyboard", Currency: "USD", Amount: 100, Stock: -1})
		if err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("valid input is active by default", func(t *testing.T) {
		p, err := svc.CreateProduct(context.Background(), CreateProductInput{Name: "Keyboard", Currency: "USD", Amount: 100, Stock: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.Active {
			t.Fatal("expected new product to be active")
		}
	})
}

func TestDecrementStockValidation(t *testing.T) {
	svc := NewService(fakeRepo{})

	t.Run("empty id -> invalid", func(t *testing.T) {
		if err := svc.DecrementStock(context.Background(), "", 1); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("zero qty -> invalid", func(t *testing.T) {
		if err := svc.DecrementStock(context.Background(), "p1", 0); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductID: "p1"}
	if err.Error() == "" {
		t.Fatal("expected a message")
	}
}
