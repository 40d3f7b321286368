package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/catalog/app"
	"storefront/internal/catalog/domain"
	"storefront/internal/storage"
	storagepg "storefront/internal/storage/postgres"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

var _ app.ProductRepo = (*ProductRepo)(nil)

const productColumns = `id, name, description, brand, price_amount, currency, stock, active, created_at, updated_at`

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := storagepg.Q(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO products (name, description, brand, price_amount, currency, stock, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+productColumns,
		p.Name, p.Description, p.Brand, p.Price.Amount, p.Price.Currency, p.Stock, p.Active)
	return scanProduct(row)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, storage.ErrNotFound
	}

	row := storagepg.Q(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1`, productID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, storage.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	productID, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Product{}, storage.ErrNotFound
	}

	row := storagepg.Q(ctx, r.db).QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, brand = $4, price_amount = $5,
		    currency = $6, stock = $7, active = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		productID, p.Name, p.Description, p.Brand, p.Price.Amount, p.Price.Currency, p.Stock, p.Active)
	updated, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, storage.ErrNotFound
	}
	return updated, err
}

func (r *ProductRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	var cur uuid.NullUUID
	if strings.TrimSpace(cursor) != "" {
		id, err := uuid.Parse(strings.TrimSpace(cursor))
		if err != nil {
			return nil, "", app.ErrInvalidInput
		}
		cur = uuid.NullUUID{UUID: id, Valid: true}
	}

	rows, err := storagepg.Q(ctx, r.db).QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($3::uuid IS NULL OR id > $3)
		ORDER BY id
		LIMIT $2`,
		strings.TrimSpace(query), limit, cur)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, limit)
	var nextCursor string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, "", err
		}
		out = append(out, p)
		nextCursor = p.ID
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	if len(out) < limit {
		nextCursor = ""
	}
	return out, nextCursor, nil
}

// DecrementStock is a single conditional update so two concurrent checkouts
// can never both drive stock past zero: the row lock serializes them and the
// stock >= $2 guard fails the loser.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID string, qty int64) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return storage.ErrNotFound
	}

	res, err := storagepg.Q(ctx, r.db).ExecContext(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		err := storagepg.Q(ctx, r.db).QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return storage.ErrNotFound
		}
		return &app.InsufficientStockError{ProductID: productID}
	}
	return nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, productID string, qty int64) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return storage.ErrNotFound
	}

	res, err := storagepg.Q(ctx, r.db).ExecContext(ctx, `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1`, id, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p  domain.Product
		id uuid.UUID
	)
	err := row.Scan(&id, &p.Name, &p.Description, &p.Brand,
		&p.Price.Amount, &p.Price.Currency, &p.Stock, &p.Active,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id.String()
	return p, nil
}
