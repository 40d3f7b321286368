package app

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/order/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// Create opens a new order in Pending status. Line items are attached
// separately so the checkout transaction can capture unit prices one cart
// line at a time.
func (s *Service) Create(ctx context.Context, userID, currency string) (domain.Order, error) {
	if userID == "" || currency == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, domain.Order{
		UserID:   userID,
		Status:   domain.StatusPending,
		Currency: currency,
	})
}

func (s *Service) AddItem(ctx context.Context, orderID, productID string, qty, unitAmount int64) (domain.OrderItem, error) {
	if orderID == "" || productID == "" || qty <= 0 || unitAmount < 0 {
		return domain.OrderItem{}, ErrInvalidInput
	}
	return s.repo.AddItem(ctx, domain.OrderItem{
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   qty,
		UnitAmount: unitAmount,
	})
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	if orderID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListItems(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}

// SetStatus performs an administrative status move, validating it against
// the transition table. The checkout engine never calls this.
func (s *Service) SetStatus(ctx context.Context, id string, to domain.Status) (domain.Order, error) {
	if id == "" || !to.Valid() {
		return domain.Order{}, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !current.Status.CanTransition(to) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}
	return s.repo.UpdateStatus(ctx, id, to)
}
