package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.store.Pool.Exec(ctx, `
		INSERT INTO categories (id, name, description)
		VALUES ($1,$2,$3)
	`, c.ID, c.Name, c.Description)
	if pgErrCode(err) == "23505" {
		return ErrConflict
	}
	return err
}

func (r *PGRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.store.Pool.QueryRow(ctx, `
		SELECT id, name, description FROM categories WHERE id=$1
	`, id).Scan(&c.ID, &c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepo) ListCategories(ctx context.Context, limit, offset int) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.store.Pool.Query(ctx, `
		SELECT id, name, description FROM categories
		ORDER BY name LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateCategory(ctx context.Context, id string, name, description *string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.store.Pool.QueryRow(ctx, `
		UPDATE categories
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description
	`, id, name, description).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if pgErrCode(err) == "23505" {
			return nil, ErrConflict
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteCategory refuses to delete a category that still has products;
// callers reassign products first.
func (r *PGRepo) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.store.Pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		if pgErrCode(err) == "23503" {
			return ErrCategoryInUse
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
