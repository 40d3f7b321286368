// Package memstore is a single-process implementation of every context's
// repository ports plus the transaction manager. It backs the test suites
// and lets the server run without a database.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	cartdomain "storefront/internal/cart/domain"
	catalogdomain "storefront/internal/catalog/domain"
	orderdomain "storefront/internal/order/domain"
	"storefront/internal/storage"
)

type state struct {
	products     map[string]catalogdomain.Product
	productOrder []string

	carts        map[string]cartdomain.Cart
	cartIDByUser map[string]string
	cartItems    map[string][]cartdomain.CartItem

	orders     map[string]orderdomain.Order
	orderOrder []string
	orderItems map[string][]orderdomain.OrderItem
}

func newState() *state {
	return &state{
		products:     make(map[string]catalogdomain.Product),
		carts:        make(map[string]cartdomain.Cart),
		cartIDByUser: make(map[string]string),
		cartItems:    make(map[string][]cartdomain.CartItem),
		orders:       make(map[string]orderdomain.Order),
		orderItems:   make(map[string][]orderdomain.OrderItem),
	}
}

func (st *state) clone() *state {
	cp := newState()
	for k, v := range st.products {
		cp.products[k] = v
	}
	cp.productOrder = append([]string(nil), st.productOrder...)
	for k, v := range st.carts {
		cp.carts[k] = v
	}
	for k, v := range st.cartIDByUser {
		cp.cartIDByUser[k] = v
	}
	for k, v := range st.cartItems {
		cp.cartItems[k] = append([]cartdomain.CartItem(nil), v...)
	}
	for k, v := range st.orders {
		cp.orders[k] = v
	}
	cp.orderOrder = append([]string(nil), st.orderOrder...)
	for k, v := range st.orderItems {
		cp.orderItems[k] = append([]orderdomain.OrderItem(nil), v...)
	}
	return cp
}

// Store holds all entities behind one RWMutex. Transactions take the write
// lock for their whole duration and roll back by restoring a snapshot, so a
// failed checkout leaves no partial state and readers never observe one.
type Store struct {
	mu sync.RWMutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) wlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

var _ storage.TxManager = (*Store)(nil)

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	err := fn(context.WithValue(ctx, txKey{}, true))
	if err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func now() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }
