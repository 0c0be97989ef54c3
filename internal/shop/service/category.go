package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/metrics"
	"github.com/aussiebroadwan/storefront/internal/shop/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/gosimple/slug"
)

// slugPadding is the width of the counter appended to clashing slugs.
const slugPadding = 2

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category already exists")
)

type CategoryService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	c, err := s.Store.Categories().GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrCategoryNameRequired
	}

	now := time.Now().UTC()
	c := domain.Category{
		ID:        idx.NewAt(now).String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if c.Slug, err = uniqueSlug(ctx, tx, name, ""); err != nil {
			return err
		}
		return tx.Categories().CreateCategory(ctx, c)
	})
	if err != nil {
		return domain.Category{}, mapCategoryErr(err)
	}

	slogx.FromContext(ctx).Info("category created", slog.String("category_id", c.ID), slog.String("slug", c.Slug))
	s.Metrics.RecordCategoryChange("create")
	return c, nil
}

// Update renames a category and regenerates its slug.
func (s *CategoryService) Update(ctx context.Context, id, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, ErrCategoryNameRequired
	}

	var c domain.Category
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if c, err = tx.Categories().GetCategoryByID(ctx, id); err != nil {
			return err
		}
		newSlug, err := uniqueSlug(ctx, tx, name, id)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := tx.Categories().UpdateCategory(ctx, id, name, newSlug, now); err != nil {
			return err
		}
		c.Name, c.Slug, c.UpdatedAt = name, newSlug, now
		return nil
	})
	if err != nil {
		return domain.Category{}, mapCategoryErr(err)
	}

	slogx.FromContext(ctx).Info("category updated", slog.String("category_id", id), slog.String("slug", c.Slug))
	s.Metrics.RecordCategoryChange("update")
	return c, nil
}

// Delete removes a category and returns what was removed.
func (s *CategoryService) Delete(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if c, err = tx.Categories().GetCategoryByID(ctx, id); err != nil {
			return err
		}
		return tx.Categories().DeleteCategory(ctx, id)
	})
	if err != nil {
		return domain.Category{}, mapCategoryErr(err)
	}

	slogx.FromContext(ctx).Info("category deleted", slog.String("category_id", id))
	s.Metrics.RecordCategoryChange("delete")
	return c, nil
}

// uniqueSlug slugifies name and, when that slug is taken, appends the lowest
// free zero-padded counter: shoes, shoes-01, shoes-02.
func uniqueSlug(ctx context.Context, tx store.Tx, name, excludeID string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "category"
	}

	taken, err := tx.Categories().TakenSlugs(ctx, base, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check slugs: %w", err)
	}
	return nextFreeSlug(base, taken), nil
}

func nextFreeSlug(base string, taken []string) string {
	used := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		used[t] = struct{}{}
	}
	if _, ok := used[base]; !ok {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%0*d", base, slugPadding, i)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}

func mapCategoryErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrCategoryExists
	default:
		return err
	}
}
