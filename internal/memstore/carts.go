package memstore

import (
	"context"

	cartapp "storefront/internal/cart/app"
	"storefront/internal/cart/domain"
	"storefront/internal/storage"
)

// Carts adapts the store to the cart's CartRepo port.
type Carts struct {
	s *Store
}

func NewCarts(s *Store) *Carts { return &Carts{s: s} }

var _ cartapp.CartRepo = (*Carts)(nil)

func (r *Carts) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	unlock := r.s.wlock(ctx)
	defer unlock()

	if id, ok := r.s.st.cartIDByUser[userID]; ok {
		return r.cartWithItems(id), nil
	}

	cart := domain.Cart{
		ID:        newID(),
		UserID:    userID,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	r.s.st.carts[cart.ID] = cart
	r.s.st.cartIDByUser[userID] = cart.ID
	return cart, nil
}

func (r *Carts) Get(ctx context.Context, userID string) (domain.Cart, error) {
	unlock := r.s.rlock(ctx)
	defer unlock()

	id, ok := r.s.st.cartIDByUser[userID]
	if !ok {
		return domain.Cart{}, storage.ErrNotFound
	}
	return r.cartWithItems(id), nil
}

// cartWithItems must be called with the lock held.
func (r *Carts) cartWithItems(cartID string) domain.Cart {
	cart := r.s.st.carts[cartID]
	cart.Items = append([]domain.CartItem(nil), r.s.st.cartItems[cartID]...)
	return cart
}

func (r *Carts) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	unlock := r.s.rlock(ctx)
	defer unlock()

	if _, ok := r.s.st.carts[cartID]; !ok {
		return nil, storage.ErrNotFound
	}
	return append([]domain.CartItem(nil), r.s.st.cartItems[cartID]...), nil
}

func (r *Carts) AddItem(ctx context.Context, cartID, productID string, qty int64) error {
	unlock := r.s.wlock(ctx)
	defer unlock()

	if _, ok := r.s.st.carts[cartID]; !ok {
		return storage.ErrNotFound
	}

	items := r.s.st.cartItems[cartID]
	for i, it := range items {
		if it.ProductID == productID {
			items[i].Quantity += qty
			r.touchCart(cartID)
			return nil
		}
	}

	r.s.st.cartItems[cartID] = append(items, domain.CartItem{
		ID:        newID(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
	})
	r.touchCart(cartID)
	return nil
}

func (r *Carts) RemoveItem(ctx context.Context, cartID, productID string) error {
	unlock := r.s.wlock(ctx)
	defer unlock()

	items := r.s.st.cartItems[cartID]
	for i, it := range items {
		if it.ProductID == productID {
			r.s.st.cartItems[cartID] = append(items[:i:i], items[i+1:]...)
			r.touchCart(cartID)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (r *Carts) SetItemQuantity(ctx context.Context, userID, itemID string, qty int64) error {
	unlock := r.s.wlock(ctx)
	defer unlock()

	cartID, ok := r.s.st.cartIDByUser[userID]
	if !ok {
		return storage.ErrNotFound
	}
	items := r.s.st.cartItems[cartID]
	for i, it := range items {
		if it.ID == itemID {
			items[i].Quantity = qty
			r.touchCart(cartID)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (r *Carts) DeleteItem(ctx context.Context, userID, itemID string) error {
	unlock := r.s.wlock(ctx)
	defer unlock()

	cartID, ok := r.s.st.cartIDByUser[userID]
	if !ok {
		return storage.ErrNotFound
	}
	items := r.s.st.cartItems[cartID]
	for i, it := range items {
		if it.ID == itemID {
			r.s.st.cartItems[cartID] = append(items[:i:i], items[i+1:]...)
			r.touchCart(cartID)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (r *Carts) ClearItems(ctx context.Context, cartID string) error {
	unlock := r.s.wlock(ctx)
	defer unlock()

	if _, ok := r.s.st.carts[cartID]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.st.cartItems, cartID)
	r.touchCart(cartID)
	return nil
}

// touchCart must be called with the lock held.
func (r *Carts) touchCart(cartID string) {
	cart := r.s.st.carts[cartID]
	cart.UpdatedAt = now()
	r.s.st.carts[cartID] = cart
}
