// Package catalog provides the repository interface and PostgreSQL
// implementation for managing products and categories.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mercadia/storefront/internal/storage"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, id string, patch Patch) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	BulkUpdate(ctx context.Context, items []BulkItem) (int, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context, limit, offset int) ([]Category, error)
	UpdateCategory(ctx context.Context, id string, name, description *string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type PGRepo struct{ store *storage.Store }

func NewPGRepo(store *storage.Store) *PGRepo { return &PGRepo{store: store} }

const productCols = `id, name, description, price::text, stock, is_active, category_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.IsActive, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.store.Pool.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, stock, is_active, category_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4::numeric,$5,$6,$7,NOW(),NOW())
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Description, p.Price, p.Stock, p.IsActive, p.CategoryID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	switch pgErrCode(err) {
	case "23505":
		return ErrConflict
	case "23503":
		return ErrCategoryNotFound
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.store.Pool.QueryRow(ctx,
		`SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.store.Pool.Query(ctx, `
		SELECT `+productCols+`
		FROM products
		WHERE ($1::boolean IS NULL OR is_active = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, q.Active, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, id string, patch Patch) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.store.Pool.QueryRow(ctx, `
		UPDATE products
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price       = COALESCE($4::numeric, price),
		    stock       = COALESCE($5, stock),
		    is_active   = COALESCE($6, is_active),
		    category_id = COALESCE($7, category_id),
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING `+productCols+`
	`, id, patch.Name, patch.Description, patch.Price, patch.Stock, patch.IsActive, patch.CategoryID))
	if err != nil {
		switch pgErrCode(err) {
		case "23505":
			return nil, ErrConflict
		case "23503":
			return nil, ErrCategoryNotFound
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.store.Pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// BulkUpdate applies a batch of partial updates as one transaction.
// Every target product (and any referenced category) is resolved before
// the first write; a single miss aborts the whole batch. Returns the
// number of products touched.
func (r *PGRepo) BulkUpdate(ctx context.Context, items []BulkItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	updated := 0
	err := r.store.ExecTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id FROM products WHERE id = ANY($1::uuid[])`, ids)
		if err != nil {
			return err
		}
		found := make(map[string]struct{}, len(ids))
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			found[id] = struct{}{}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if missing := missingIDs(ids, found); len(missing) > 0 {
			return &MissingProductsError{IDs: missing}
		}

		for _, catID := range categoryIDs(items) {
			var one int
			if err := tx.QueryRow(ctx, `SELECT 1 FROM categories WHERE id=$1`, catID).Scan(&one); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return ErrCategoryNotFound
				}
				return err
			}
		}

		for _, it := range items {
			if it.Patch.IsEmpty() {
				continue
			}
			if _, err := tx.Exec(ctx, `
				UPDATE products
				SET name        = COALESCE($2, name),
				    description = COALESCE($3, description),
				    price       = COALESCE($4::numeric, price),
				    stock       = COALESCE($5, stock),
				    is_active   = COALESCE($6, is_active),
				    category_id = COALESCE($7, category_id),
				    updated_at  = NOW()
				WHERE id = $1
			`, it.ProductID, it.Name, it.Description, it.Price, it.Stock, it.IsActive, it.CategoryID); err != nil {
				if pgErrCode(err) == "23505" {
					return ErrConflict
				}
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// missingIDs returns requested ids absent from found, deduplicated, in
// request order.
func missingIDs(requested []string, found map[string]struct{}) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, id := range requested {
		if _, ok := found[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing
}

func categoryIDs(items []BulkItem) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, it := range items {
		if it.CategoryID == nil {
			continue
		}
		if _, dup := seen[*it.CategoryID]; dup {
			continue
		}
		seen[*it.CategoryID] = struct{}{}
		out = append(out, *it.CategoryID)
	}
	return out
}
