package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"storefront/internal/order/app"
	"storefront/internal/order/domain"
	"storefront/internal/storage"
	storagepg "storefront/internal/storage/postgres"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

var _ app.OrderRepo = (*OrderRepo)(nil)

func (r *OrderRepo) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	var id uuid.UUID
	err := storagepg.Q(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO orders (user_id, status, currency)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		o.UserID, string(o.Status), o.Currency).
		Scan(&id, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = id.String()
	o.Items = nil
	return o, nil
}

func (r *OrderRepo) AddItem(ctx context.Context, item domain.OrderItem) (domain.OrderItem, error) {
	orderID, err := uuid.Parse(item.OrderID)
	if err != nil {
		return domain.OrderItem{}, storage.ErrNotFound
	}
	productID, err := uuid.Parse(item.ProductID)
	if err != nil {
		return domain.OrderItem{}, storage.ErrNotFound
	}

	var id uuid.UUID
	err = storagepg.Q(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		orderID, productID, item.Quantity, item.UnitAmount).
		Scan(&id)
	if err != nil {
		return domain.OrderItem{}, err
	}
	item.ID = id.String()
	return item, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, storage.ErrNotFound
	}

	var (
		o      domain.Order
		oid    uuid.UUID
		status string
	)
	err = storagepg.Q(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, user_id, status, currency, created_at, updated_at
		FROM orders WHERE id = $1`, orderID).
		Scan(&oid, &o.UserID, &status, &o.Currency, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = oid.String()
	o.Status = domain.Status(status)

	o.Items, err = r.ListItems(ctx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, storage.ErrNotFound
	}

	rows, err := storagepg.Q(ctx, r.db).QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_amount
		FROM order_items WHERE order_id = $1
		ORDER BY created_at, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			it                      domain.OrderItem
			itemID, ownerID, prodID uuid.UUID
		)
		if err := rows.Scan(&itemID, &ownerID, &prodID, &it.Quantity, &it.UnitAmount); err != nil {
			return nil, err
		}
		it.ID = itemID.String()
		it.OrderID = ownerID.String()
		it.ProductID = prodID.String()
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := storagepg.Q(ctx, r.db).QueryContext(ctx, `
		SELECT id, user_id, status, currency, created_at, updated_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var (
			o      domain.Order
			oid    uuid.UUID
			status string
		)
		if err := rows.Scan(&oid, &o.UserID, &status, &o.Currency, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.ID = oid.String()
		o.Status = domain.Status(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		items, err := r.ListItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, storage.ErrNotFound
	}

	res, err := storagepg.Q(ctx, r.db).ExecContext(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1`, orderID, string(status))
	if err != nil {
		return domain.Order{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Order{}, err
	}
	if n == 0 {
		return domain.Order{}, storage.ErrNotFound
	}
	return r.Get(ctx, id)
}
