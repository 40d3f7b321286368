package memstore

import (
	"context"
	"errors"
	"testing"

	catalogapp "storefront/internal/catalog/app"
	catalogdomain "storefront/internal/catalog/domain"
	"storefront/internal/storage"
)

func TestProducts_DecrementStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := NewProducts(store)

	p, err := products.Create(ctx, catalogdomain.Product{
		Name:  "Widget",
		Price: catalogdomain.Money{Currency: "USD", Amount: 1000},
		Stock: 3,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("within stock", func(t *testing.T) {
		if err := products.DecrementStock(ctx, p.ID, 2); err != nil {
			t.Fatalf("DecrementStock failed: %v", err)
		}
		got, _ := products.Get(ctx, p.ID)
		if got.Stock != 1 {
			t.Fatalf("expected stock 1, got %d", got.Stock)
		}
	})

	t.Run("over stock", func(t *testing.T) {
		err := products.DecrementStock(ctx, p.ID, 2)
		var stockErr *catalogapp.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected InsufficientStockError, got %v", err)
		}
		got, _ := products.Get(ctx, p.ID)
		if got.Stock != 1 {
			t.Fatalf("expected stock unchanged at 1, got %d", got.Stock)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		err := products.DecrementStock(ctx, "missing", 1)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestWithTransaction_RollbackRestoresState(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := NewProducts(store)
	carts := NewCarts(store)

	p, err := products.Create(ctx, catalogdomain.Product{
		Name:  "Widget",
		Price: catalogdomain.Money{Currency: "USD", Amount: 1000},
		Stock: 10,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	cart, err := carts.GetOrCreate(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if err := carts.AddItem(ctx, cart.ID, p.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	boom := errors.New("boom")
	err = store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := products.DecrementStock(ctx, p.ID, 5); err != nil {
			return err
		}
		if err := carts.ClearItems(ctx, cart.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the injected error back, got %v", err)
	}

	got, _ := products.Get(ctx, p.ID)
	if got.Stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", got.Stock)
	}
	items, _ := carts.ListItems(ctx, cart.ID)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected cart restored, got %+v", items)
	}
}

func TestWithTransaction_CommitKeepsState(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := NewProducts(store)

	p, _ := products.Create(ctx, catalogdomain.Product{
		Name:  "Widget",
		Price: catalogdomain.Money{Currency: "USD", Amount: 1000},
		Stock: 10,
	})

	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		return products.DecrementStock(ctx, p.ID, 4)
	})
	if err != nil {
		t.Fatalf("WithTransaction failed: %v", err)
	}

	got, _ := products.Get(ctx, p.ID)
	if got.Stock != 6 {
		t.Fatalf("expected stock 6, got %d", got.Stock)
	}
}

func TestWithTransaction_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := NewProducts(store)

	p, _ := products.Create(ctx, catalogdomain.Product{
		Name:  "Widget",
		Price: catalogdomain.Money{Currency: "USD", Amount: 1000},
		Stock: 10,
	})

	boom := errors.New("boom")
	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := products.DecrementStock(ctx, p.ID, 1); err != nil {
			return err
		}
		// nested call must reuse the outer transaction, not deadlock
		return store.WithTransaction(ctx, func(ctx context.Context) error {
			if err := products.DecrementStock(ctx, p.ID, 1); err != nil {
				return err
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the injected error back, got %v", err)
	}

	got, _ := products.Get(ctx, p.ID)
	if got.Stock != 10 {
		t.Fatalf("expected full rollback to stock 10, got %d", got.Stock)
	}
}
