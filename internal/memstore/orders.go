package memstore

import (
	"context"

	orderapp "storefront/internal/order/app"
	"storefront/internal/order/domain"
	"storefront/internal/storage"
)

// Orders adapts the store to the order's OrderRepo port.
type Orders struct {
	s *Store
}

func NewOrders(s *Store) *Orders { return &Orders{s: s} }

var _ orderapp.OrderRepo = (*Orders)(nil)

func (r *Orders) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	unlock := r.s.wlock(ctx)
	defer unlock()

	o.ID = newID()
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	o.Items = nil
	r.s.st.orders[o.ID] = o
	r.s.st.orderOrder = append(r.s.st.orderOrder, o.ID)
	return o, nil
}

func (r *Orders) AddItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	unlock := r.s.wlock(ctx)
	defer unlock()

	if _, ok := r.s.st.orders[item.OrderID]; !ok {
		return domain.OrderItem{}, storage.ErrNotFound
	}
	item.ID = newID()
	r.s.st.orderItems[item.OrderID] = append(r.s.st.orderItems[item.OrderID], item)
	return item, nil
}

func (r *Orders) Get(ctx context.Context, id string) (domain.Order, error) {
	unlock := r.s.rlock(ctx)
	defer unlock()

	o, ok := r.s.st.orders[id]
	if !ok {
		return domain.Order{}, storage.ErrNotFound
	}
	o.Items = append([]domain.OrderItem(nil), r.s.st.orderItems[id]...)
	return o, nil
}

func (r *Orders) ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	unlock := r.s.rlock(ctx)
	defer unlock()

	if _, ok := r.s.st.orders[orderID]; !ok {
		return nil, storage.ErrNotFound
	}
	return append([]domain.OrderItem(nil), r.s.st.orderItems[orderID]...), nil
}

func (r *Orders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	unlock := r.s.rlock(ctx)
	defer unlock()

	// newest first, matching the order listing everywhere else
	var out []domain.Order
	for i := len(r.s.st.orderOrder) - 1; i >= 0; i-- {
		o := r.s.st.orders[r.s.st.orderOrder[i]]
		if o.UserID != userID {
			continue
		}
		o.Items = append([]domain.OrderItem(nil), r.s.st.orderItems[o.ID]...)
		out = append(out, o)
	}
	return out, nil
}

func (r *Orders) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	unlock := r.s.wlock(ctx)
	defer unlock()

	o, ok := r.s.st.orders[id]
	if !ok {
		return domain.Order{}, storage.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = now()
	r.s.st.orders[id] = o

	o.Items = append([]domain.OrderItem(nil), r.s.st.orderItems[id]...)
	return o, nil
}
