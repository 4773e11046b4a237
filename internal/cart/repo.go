// Package cart provides the per-owner cart store: the mutable staging
// area consumed by the order engine. Stock checks here compare against
// live stock but are advisory; the commit-time check in the order
// engine is the one that holds.
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mercadia/storefront/internal/catalog"
	"github.com/mercadia/storefront/internal/storage"
)

var (
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrProductNotFound = errors.New("product not found")
	ErrUnavailable     = errors.New("product is not available")
)

type Repository interface {
	AddOrMerge(ctx context.Context, owner, productID string, quantity int) (*Item, error)
	List(ctx context.Context, owner string) ([]Item, error)
	SetQuantity(ctx context.Context, owner, productID string, quantity int) (*Item, error)
	Remove(ctx context.Context, owner, productID string) error
	Clear(ctx context.Context, owner string) error
	Summary(ctx context.Context, owner string) (*Summary, error)
}

type PGRepo struct{ store *storage.Store }

func NewPGRepo(store *storage.Store) *PGRepo { return &PGRepo{store: store} }

const itemCols = `ci.id, ci.owner_id, ci.product_id, ci.quantity, ci.added_at,
	p.id, p.name, p.description, p.price::text, p.stock, p.is_active, p.category_id, p.created_at, p.updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.OwnerID, &it.ProductID, &it.Quantity, &it.AddedAt,
		&it.Product.ID, &it.Product.Name, &it.Product.Description, &it.Product.Price,
		&it.Product.Stock, &it.Product.IsActive, &it.Product.CategoryID,
		&it.Product.CreatedAt, &it.Product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// AddOrMerge adds quantity to an existing (owner, product) row or
// creates one. The merged quantity is checked against live stock.
func (r *PGRepo) AddOrMerge(ctx context.Context, owner, productID string, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		name   string
		stock  int
		active bool
	)
	err := r.store.Pool.QueryRow(ctx,
		`SELECT name, stock, is_active FROM products WHERE id=$1`, productID).
		Scan(&name, &stock, &active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrUnavailable
	}

	newQty := quantity
	var existing int
	err = r.store.Pool.QueryRow(ctx,
		`SELECT quantity FROM cart_items WHERE owner_id=$1 AND product_id=$2`, owner, productID).
		Scan(&existing)
	if err == nil {
		newQty += existing
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if newQty > stock {
		return nil, &catalog.InsufficientStockError{ProductName: name, Available: stock}
	}

	var id string
	err = r.store.Pool.QueryRow(ctx, `
		INSERT INTO cart_items (id, owner_id, product_id, quantity, added_at)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (owner_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id
	`, uuid.NewString(), owner, productID, newQty).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, owner, productID)
}

func (r *PGRepo) get(ctx context.Context, owner, productID string) (*Item, error) {
	it, err := scanItem(r.store.Pool.QueryRow(ctx, `
		SELECT `+itemCols+`
		FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.owner_id=$1 AND ci.product_id=$2
	`, owner, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *PGRepo) List(ctx context.Context, owner string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.store.Pool.Query(ctx, `
		SELECT `+itemCols+`
		FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.owner_id=$1
		ORDER BY ci.added_at
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// SetQuantity replaces the row's quantity outright, unlike AddOrMerge.
func (r *PGRepo) SetQuantity(ctx context.Context, owner, productID string, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	it, err := r.get(ctx, owner, productID)
	if err != nil {
		return nil, err
	}
	if quantity > it.Product.Stock {
		return nil, &catalog.InsufficientStockError{ProductName: it.Product.Name, Available: it.Product.Stock}
	}
	if _, err := r.store.Pool.Exec(ctx, `
		UPDATE cart_items SET quantity=$3 WHERE owner_id=$1 AND product_id=$2
	`, owner, productID, quantity); err != nil {
		return nil, err
	}
	it.Quantity = quantity
	return it, nil
}

func (r *PGRepo) Remove(ctx context.Context, owner, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.store.Pool.Exec(ctx,
		`DELETE FROM cart_items WHERE owner_id=$1 AND product_id=$2`, owner, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear is idempotent; clearing an empty cart is not an error.
func (r *PGRepo) Clear(ctx context.Context, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.store.Pool.Exec(ctx, `DELETE FROM cart_items WHERE owner_id=$1`, owner)
	return err
}

func (r *PGRepo) Summary(ctx context.Context, owner string) (*Summary, error) {
	items, err := r.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return buildSummary(items)
}
