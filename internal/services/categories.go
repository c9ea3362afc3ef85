package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/store"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

// CategoryInput describes a new category. A nil Order appends it after the
// existing ones.
type CategoryInput struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Order *int    `json:"order,omitempty"`
	Color *string `json:"color,omitempty"`
}

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, in CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id string, p models.CategoryPatch) (*models.Category, error)
	// Delete fails with common.ErrorInUse while bookmarks reference the
	// category. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	// Reorder assigns orders 0..n-1 following ids, which must name every
	// category exactly once.
	Reorder(ctx context.Context, ids []string) ([]models.Category, error)
}

type categoryService struct {
	store *store.Store
	clock timex.Clock
	log   logging.Logger
}

func NewCategoryService(st *store.Store, clock timex.Clock, log logging.Logger) CategoryService {
	return &categoryService{store: st, clock: clock, log: log.With("component", "categories")}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	list, err := s.store.Repos().Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.store.Repos().Categories.Get(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	c := models.Category{
		ID:        strings.TrimSpace(in.ID),
		Name:      strings.TrimSpace(in.Name),
		Color:     in.Color,
		CreatedAt: s.clock.Now().UTC(),
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", common.ErrorValidation)
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if in.Order != nil {
			c.Order = *in.Order
		} else {
			next, err := r.Categories.NextOrder(ctx)
			if err != nil {
				return err
			}
			c.Order = next
		}
		return r.Categories.Insert(ctx, &c)
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (s *categoryService) Update(ctx context.Context, id string, p models.CategoryPatch) (*models.Category, error) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name must not be empty", common.ErrorValidation)
		}
		p.Name = &name
	}

	var out *models.Category
	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if err := r.Categories.Update(ctx, id, p); err != nil {
			return err
		}
		var err error
		out, err = r.Categories.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return out, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	repo := s.store.Repos().Categories

	_, err := repo.Delete(ctx, id)
	if errors.Is(err, common.ErrorInvalidReference) {
		n, cerr := repo.CountBookmarks(ctx, id)
		if cerr != nil {
			return fmt.Errorf("delete category: %w", errors.Join(common.ErrorInUse, cerr))
		}
		s.log.Info(ctx, "category delete refused", "id", id, "bookmarks", n)
		return fmt.Errorf("%w: category %s is still used by %d bookmark(s)", common.ErrorInUse, id, n)
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *categoryService) Reorder(ctx context.Context, ids []string) ([]models.Category, error) {
	var out []models.Category
	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		current, err := r.Categories.List(ctx)
		if err != nil {
			return err
		}
		if err := sameSet(current, ids); err != nil {
			return err
		}
		for i, id := range ids {
			if err := r.Categories.SetOrder(ctx, id, i); err != nil {
				return err
			}
		}
		out, err = r.Categories.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reorder categories: %w", err)
	}
	return out, nil
}

func sameSet(current []models.Category, ids []string) error {
	if len(ids) != len(current) {
		return fmt.Errorf("%w: expected %d category ids, got %d", common.ErrorValidation, len(current), len(ids))
	}
	known := make(map[string]bool, len(current))
	for _, c := range current {
		known[c.ID] = false
	}
	for _, id := range ids {
		used, ok := known[id]
		if !ok {
			return fmt.Errorf("%w: unknown category %q", common.ErrorValidation, id)
		}
		if used {
			return fmt.Errorf("%w: category %q listed twice", common.ErrorValidation, id)
		}
		known[id] = true
	}
	return nil
}
