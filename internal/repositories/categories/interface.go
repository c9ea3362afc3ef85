package categories

import (
	"context"

	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

// Repository describes CRUD operations for categories.
type Repository interface {
	// List returns all categories by display order.
	List(ctx context.Context) ([]models.Category, error)

	// Get returns common.ErrorNotFound when id is unknown.
	Get(ctx context.Context, id string) (*models.Category, error)

	Insert(ctx context.Context, c *models.Category) error

	// Update applies the non-nil fields of p. It returns common.ErrorNotFound
	// when id is unknown.
	Update(ctx context.Context, id string, p models.CategoryPatch) error

	// Delete removes the category and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// NextOrder returns the order value that appends after every category.
	NextOrder(ctx context.Context) (int, error)

	SetOrder(ctx context.Context, id string, order int) error

	// CountBookmarks returns how many bookmarks reference the category.
	CountBookmarks(ctx context.Context, id string) (int, error)
}
