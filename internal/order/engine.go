// Package order turns a mutable cart into an immutable order while
// keeping stock counts correct under concurrent purchases.
package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mercadia/storefront/internal/catalog"
	"github.com/mercadia/storefront/internal/storage"
)

type Repository interface {
	CreateFromCart(ctx context.Context, owner string) (*Order, error)
	ListByOwner(ctx context.Context, owner string, limit, offset int) ([]Order, error)
	GetForOwner(ctx context.Context, id, owner string) (*Order, error)
}

type PGEngine struct{ store *storage.Store }

func NewPGEngine(store *storage.Store) *PGEngine { return &PGEngine{store: store} }

// CreateFromCart commits the owner's cart as one transaction: validate
// against current product state, create the order and its items with
// frozen prices, decrement stock, clear the cart. On any failure none
// of those writes survive.
//
// The stock decrement is conditional (stock = stock - qty only while
// stock >= qty), so two concurrent commits on the same product
// serialize on the row and the loser fails instead of overselling.
func (e *PGEngine) CreateFromCart(ctx context.Context, owner string) (*Order, error) {
	var out *Order
	err := e.store.ExecTx(ctx, func(tx pgx.Tx) error {
		lines, err := loadCartLines(ctx, tx, owner)
		if err != nil {
			return err
		}
		total, err := checkoutTotal(lines)
		if err != nil {
			return err
		}

		o := &Order{
			ID:          uuid.NewString(),
			OwnerID:     owner,
			Status:      StatusPending,
			TotalAmount: total.StringFixed(2),
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO orders (id, owner_id, total_amount, status, created_at)
			VALUES ($1,$2,$3::numeric,$4,NOW())
			RETURNING created_at
		`, o.ID, o.OwnerID, o.TotalAmount, o.Status).Scan(&o.CreatedAt); err != nil {
			return err
		}

		for _, l := range lines {
			productID := l.productID
			it := Item{
				ID:              uuid.NewString(),
				OrderID:         o.ID,
				ProductID:       &productID,
				Quantity:        l.quantity,
				PriceAtPurchase: l.price.StringFixed(2),
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase)
				VALUES ($1,$2,$3,$4,$5::numeric)
			`, it.ID, it.OrderID, it.ProductID, it.Quantity, it.PriceAtPurchase); err != nil {
				return err
			}

			tag, err := tx.Exec(ctx, `
				UPDATE products
				SET stock = stock - $2, updated_at = NOW()
				WHERE id = $1 AND stock >= $2
			`, l.productID, l.quantity)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				// A concurrent commit won the race; report what is
				// actually left.
				avail := 0
				_ = tx.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1`, l.productID).Scan(&avail)
				return &catalog.InsufficientStockError{ProductName: l.name, Available: avail}
			}
			o.Items = append(o.Items, it)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE owner_id=$1`, owner); err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// loadCartLines joins the cart with live product state. The join is
// LEFT so a vanished product is reported as gone rather than silently
// dropped from the order.
func loadCartLines(ctx context.Context, tx pgx.Tx, owner string) ([]line, error) {
	rows, err := tx.Query(ctx, `
		SELECT ci.product_id, ci.quantity, p.name, p.price::text, p.stock, p.is_active
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.owner_id = $1
		ORDER BY ci.added_at
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []line
	for rows.Next() {
		var (
			l      line
			name   *string
			price  *string
			stock  *int
			active *bool
		)
		if err := rows.Scan(&l.productID, &l.quantity, &name, &price, &stock, &active); err != nil {
			return nil, err
		}
		if name == nil || price == nil {
			l.missing = true
		} else {
			l.name = *name
			l.stock = *stock
			l.active = *active
			if l.price, err = decimal.NewFromString(*price); err != nil {
				return nil, err
			}
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (e *PGEngine) ListByOwner(ctx context.Context, owner string, limit, offset int) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := e.store.Pool.Query(ctx, `
		SELECT id, owner_id, total_amount::text, status, created_at
		FROM orders WHERE owner_id=$1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, owner, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OwnerID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetForOwner filters on id AND owner in one query, so an order that
// exists but belongs to someone else is indistinguishable from one
// that does not exist.
func (e *PGEngine) GetForOwner(ctx context.Context, id, owner string) (*Order, error) {
	var o Order
	err := e.store.Pool.QueryRow(ctx, `
		SELECT id, owner_id, total_amount::text, status, created_at
		FROM orders WHERE id=$1 AND owner_id=$2
	`, id, owner).Scan(&o.ID, &o.OwnerID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := e.store.Pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price_at_purchase::text
		FROM order_items WHERE order_id=$1
	`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceAtPurchase); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}
