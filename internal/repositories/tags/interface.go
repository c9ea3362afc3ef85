package tags

import (
	"context"

	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

// Repository describes CRUD operations for tags.
type Repository interface {
	// List returns all tags ordered by name.
	List(ctx context.Context) ([]models.Tag, error)

	// Get and GetByName return common.ErrorNotFound for unknown tags.
	Get(ctx context.Context, id string) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)

	Insert(ctx context.Context, t *models.Tag) error

	// Rename sets both the canonical name and the label.
	Rename(ctx context.Context, id, name, label string) error

	// Delete removes the tag and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// ForBookmark returns the tags attached to a bookmark, ordered by name.
	ForBookmark(ctx context.Context, bookmarkID string) ([]models.Tag, error)
}
