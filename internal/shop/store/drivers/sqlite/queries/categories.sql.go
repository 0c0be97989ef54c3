package queries

import (
	"context"
	"time"
)

const categoryColumns = `id, name, slug, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, (*timestamp)(&c.CreatedAt), (*timestamp)(&c.UpdatedAt))
	return c, err
}

const listCategories = `SELECT ` + categoryColumns + ` FROM categories ORDER BY name COLLATE NOCASE, id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const getCategoryByID = `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`

func (q *Queries) GetCategoryByID(ctx context.Context, id string) (Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, getCategoryByID, id))
}

const listSlugsWithPrefix = `SELECT slug FROM categories WHERE (slug = ? OR slug LIKE ? ESCAPE '\') AND id != ?`

// ListSlugsWithPrefix returns slugs equal to base or starting with "base-",
// ignoring the category excludeID.
func (q *Queries) ListSlugsWithPrefix(ctx context.Context, base, excludeID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listSlugsWithPrefix, base, escapeLike(base)+`-%`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

const createCategory = `INSERT INTO categories (` + categoryColumns + `) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateCategory(ctx context.Context, c Category) error {
	_, err := q.db.ExecContext(ctx, createCategory, c.ID, c.Name, c.Slug, ts(c.CreatedAt), ts(c.UpdatedAt))
	return err
}

const updateCategory = `UPDATE categories SET name = ?, slug = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdateCategory(ctx context.Context, id, name, slug string, now time.Time) (int64, error) {
	return q.execAffected(ctx, updateCategory, name, slug, ts(now), id)
}

const deleteCategory = `DELETE FROM categories WHERE id = ?`

func (q *Queries) DeleteCategory(ctx context.Context, id string) (int64, error) {
	return q.execAffected(ctx, deleteCategory, id)
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
