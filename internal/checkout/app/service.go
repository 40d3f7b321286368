package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	catalogapp "storefront/internal/catalog/app"
	"storefront/internal/checkout/domain"
	"storefront/internal/storage"
	"storefront/pkg/events"
	"storefront/pkg/metrics"
)

var ErrEmptyCart = errors.New("cart is empty")

// FlatShippingAmount is the flat shipping fee applied to every quote, in
// minor units.
const FlatShippingAmount int64 = 500

const defaultMaxRetries = 3

type Options struct {
	Logger     *slog.Logger
	Publisher  events.Publisher
	Metrics    *metrics.CheckoutMetrics
	Currency   string
	MaxRetries int
	// MaxConcurrent bounds the product fan-out in Quote.
	MaxConcurrent int
}

type Service struct {
	cart    CartStore
	catalog Catalog
	orders  OrderStore
	tx      storage.TxManager

	log           *slog.Logger
	publisher     events.Publisher
	metrics       *metrics.CheckoutMetrics
	currency      string
	maxRetries    int
	maxConcurrent int
}

func NewService(cart CartStore, catalog Catalog, orders OrderStore, tx storage.TxManager, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		catalog:       catalog,
		orders:        orders,
		tx:            tx,
		log:           opts.Logger,
		publisher:     opts.Publisher,
		metrics:       opts.Metrics,
		currency:      opts.Currency,
		maxRetries:    opts.MaxRetries,
		maxConcurrent: opts.MaxConcurrent,
	}
}

// Checkout converts the user's cart into a Pending order in one atomic unit
// of work: create the order, copy each cart line into an order line capturing
// the current unit price, decrement stock per line, clear the cart. Either
// every step commits or none are visible.
//
// A transaction aborted by concurrent modification is retried from scratch a
// bounded number of times; a retry re-reads the cart and stock, so contention
// resolves to either success or a genuine insufficient-stock failure.
func (s *Service) Checkout(ctx context.Context, userID string) (string, error) {
	start := time.Now()

	var orderID string
	var err error
	for attempt := 0; ; attempt++ {
		orderID, err = s.checkoutOnce(ctx, userID)
		if err == nil || !errors.Is(err, storage.ErrConflict) || attempt >= s.maxRetries {
			break
		}
		s.log.Warn("checkout conflict, retrying",
			slog.String("user_id", userID),
			slog.Int("attempt", attempt+1),
		)
	}

	if err != nil {
		s.metrics.Observe(resultLabel(err), time.Since(start))
		return "", err
	}

	s.metrics.Observe("success", time.Since(start))
	s.publishOrderCreated(ctx, orderID, userID)

	s.log.Info("checkout completed",
		slog.String("user_id", userID),
		slog.String("order_id", orderID),
	)
	return orderID, nil
}

func (s *Service) checkoutOnce(ctx context.Context, userID string) (string, error) {
	var orderID string

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.cart.GetOrCreateCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("resolve cart: %w", err)
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		id, err := s.orders.CreateOrder(ctx, userID, s.currency)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, it := range cart.Items {
			p, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("load product %s: %w", it.ProductID, err)
			}
			if err := s.orders.AddOrderItem(ctx, id, p.ID, it.Quantity, p.Amount); err != nil {
				return fmt.Errorf("add order item %s: %w", p.ID, err)
			}
			if err := s.catalog.DecrementStock(ctx, p.ID, it.Quantity); err != nil {
				return err
			}
		}

		if err := s.cart.ClearItems(ctx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		orderID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// Quote prices the cart's current contents without reserving anything.
// Product reads fan out concurrently; quantities and prices may change
// before Checkout runs.
func (s *Service) Quote(ctx context.Context, userID string) (domain.Quote, error) {
	cart, err := s.cart.GetOrCreateCart(ctx, userID)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(cart.Items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(cart.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx, it := range cart.Items {
		g.Go(func() error {
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			p, err := s.catalog.GetProduct(gctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("load product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  it.Quantity,
				UnitPrice: domain.Money{Currency: p.Currency, Amount: p.Amount},
				LineTotal: domain.Money{Currency: p.Currency, Amount: p.Amount * it.Quantity},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	var subtotal int64
	for _, ln := range lines {
		subtotal += ln.LineTotal.Amount
	}

	currency := lines[0].UnitPrice.Currency
	return domain.Quote{
		Lines:    lines,
		Subtotal: domain.Money{Currency: currency, Amount: subtotal},
		Tax:      domain.Money{Currency: currency, Amount: cart.TaxAmount},
		Shipping: domain.Money{Currency: currency, Amount: FlatShippingAmount},
		Total:    domain.Money{Currency: currency, Amount: subtotal + cart.TaxAmount + FlatShippingAmount},
	}, nil
}

func (s *Service) publishOrderCreated(ctx context.Context, orderID, userID string) {
	if s.publisher == nil {
		return
	}
	ev := events.Event{
		Type:    events.TypeOrderCreated,
		OrderID: orderID,
		UserID:  userID,
	}
	// Best effort: the order is already committed, a publish failure must
	// not fail the checkout.
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Error("publish order.created failed",
			slog.String("order_id", orderID),
			slog.Any("err", err),
		)
	}
}

func resultLabel(err error) string {
	var stockErr *catalogapp.InsufficientStockError
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.As(err, &stockErr):
		return "insufficient_stock"
	case errors.Is(err, storage.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
