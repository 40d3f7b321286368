package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"storefront/internal/cart/app"
	"storefront/internal/cart/domain"
	"storefront/internal/storage"
	storagepg "storefront/internal/storage/postgres"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

var _ app.CartRepo = (*CartRepo)(nil)

// GetOrCreate relies on the unique constraint on carts.user_id: when two
// first accesses race, the loser's insert hits the conflict, does nothing,
// and the re-read returns the winner's cart. DO NOTHING rather than a plain
// insert so a racing 23505 cannot abort a surrounding checkout transaction.
func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := r.Get(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return domain.Cart{}, err
	}

	_, err = storagepg.Q(ctx, r.db).ExecContext(ctx,
		`INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	return r.Get(ctx, userID)
}

func (r *CartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	var (
		cart domain.Cart
		id   uuid.UUID
	)
	err := storagepg.Q(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, user_id, tax_amount, created_at, updated_at
		FROM carts WHERE user_id = $1`, userID).
		Scan(&id, &cart.UserID, &cart.TaxAmount, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Cart{}, err
	}
	cart.ID = id.String()

	cart.Items, err = r.ListItems(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (r *CartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return nil, storage.ErrNotFound
	}

	rows, err := storagepg.Q(ctx, r.db).QueryContext(ctx, `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items WHERE cart_id = $1
		ORDER BY created_at, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			it                      domain.CartItem
			itemID, ownerID, prodID uuid.UUID
		)
		if err := rows.Scan(&itemID, &ownerID, &prodID, &it.Quantity); err != nil {
			return nil, err
		}
		it.ID = itemID.String()
		it.CartID = ownerID.String()
		it.ProductID = prodID.String()
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *CartRepo) AddItem(ctx context.Context, cartID, productID string, qty int64) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return storage.ErrNotFound
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return storage.ErrNotFound
	}

	_, err = storagepg.Q(ctx, r.db).ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartUUID, productUUID, qty)
	return err
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	cartUUID, err := uuid.Parse(cartID)
	if err != nil {
		return storage.ErrNotFound
	}
	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return storage.ErrNotFound
	}

	res, err := storagepg.Q(ctx, r.db).ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartUUID, productUUID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *CartRepo) SetItemQuantity(ctx context.Context, userID, itemID string, qty int64) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return storage.ErrNotFound
	}

	res, err := storagepg.Q(ctx, r.db).ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3
		WHERE id = $1
		  AND cart_id = (SELECT id FROM carts WHERE user_id = $2)`,
		id, userID, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *CartRepo) DeleteItem(ctx context.Context, userID, itemID string) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return storage.ErrNotFound
	}

	res, err := storagepg.Q(ctx, r.db).ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1
		  AND cart_id = (SELECT id FROM carts WHERE user_id = $2)`,
		id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *CartRepo) ClearItems(ctx context.Context, cartID string) error {
	id, err := uuid.Parse(cartID)
	if err != nil {
		return storage.ErrNotFound
	}

	_, err = storagepg.Q(ctx, r.db).ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, id)
	return err
}
