package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/store/drivers/sqlite/queries"
)

type categoriesRepo struct {
	q *queries.Queries
}

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCategory(row))
	}
	return out, nil
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	row, err := r.q.GetCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return mapCategory(row), nil
}

func (r *categoriesRepo) TakenSlugs(ctx context.Context, base, excludeID string) ([]string, error) {
	return r.q.ListSlugsWithPrefix(ctx, base, excludeID)
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	return mapConstraint(r.q.CreateCategory(ctx, queries.Category{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}))
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, id, name, slug string, now time.Time) error {
	return requireAffected(r.q.UpdateCategory(ctx, id, name, slug, now))
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, id string) error {
	return requireAffected(r.q.DeleteCategory(ctx, id))
}
