package memstore

import (
	"context"
	"strings"

	catalogapp "storefront/internal/catalog/app"
	"storefront/internal/catalog/domain"
	"storefront/internal/storage"
)

// Products adapts the store to the catalog's ProductRepo port.
type Products struct {
	s *Store
}

func NewProducts(s *Store) *Products { return &Products{s: s} }

var _ catalogapp.ProductRepo = (*Products)(nil)

func (r *Products) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	unlock := r.s.wlock(ctx)
	defer unlock()

	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	r.s.st.products[p.ID] = p
	r.s.st.productOrder = append(r.s.st.productOrder, p.ID)
	return p, nil
}

func (r *Products) Get(ctx context.Context, id string) (domain.Product, error) {
	unlock := r.s.rlock(ctx)
	defer unlock()

	p, ok := r.s.st.products[id]
	if !ok {
		return domain.Product{}, storage.ErrNotFound
	}
	return p, nil
}

func (r *Products) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	unlock := r.s.wlock(ctx)
	defer unlock()

	cur, ok := r.s.st.products[p.ID]
	if !ok {
		return domain.Product{}, storage.ErrNotFound
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = now()
	r.s.st.products[p.ID] = p
	return p, nil
}

func (r *Products) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	unlock := r.s.rlock(ctx)
	defer unlock()

	start := 0
	if cursor != "" {
		for i, id := range r.s.st.productOrder {
			if id == cursor {
				start = i + 1
				break
			}
		}
	}

	out := make([]domain.Product, 0, limit)
	var nextCursor string
	for _, id := range r.s.st.productOrder[start:] {
		p := r.s.st.products[id]
		if query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			continue
		}
		out = append(out, p)
		nextCursor = p.ID
		if len(out) == limit {
			break
		}
	}
	if len(out) < limit {
		nextCursor = ""
	}
	return out, nextCursor, nil
}

func (r *Products) DecrementStock(ctx context.Context, productID string, qty int64) error {
	unlock := r.s.wlock(ctx)
	defer unlock()

	p, ok := r.s.st.products[productID]
	if !ok {
		return storage.ErrNotFound
	}
	// conditional decrement: check and subtract under the same lock
	if p.Stock < qty {
		return &catalogapp.InsufficientStockError{ProductID: productID}
	}
	p.Stock -= qty
	p.UpdatedAt = now()
	r.s.st.products[productID] = p
	return nil
}

func (r *Products) IncrementStock(ctx context.Context, productID string, qty int64) error {
	unlock := r.s.wlock(ctx)
	defer unlock()

	p, ok := r.s.st.products[productID]
	if !ok {
		return storage.ErrNotFound
	}
	p.Stock += qty
	p.UpdatedAt = now()
	r.s.st.products[productID] = p
	return nil
}
