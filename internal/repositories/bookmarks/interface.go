package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

// Repository describes CRUD and query operations for bookmarks.
type Repository interface {
	// List returns every bookmark with its tag ids, newest first.
	List(ctx context.Context) ([]models.Bookmark, error)

	// Get returns common.ErrorNotFound when id is unknown.
	Get(ctx context.Context, id string) (*models.Bookmark, error)

	// Insert stores the core fields; tags are written by ReplaceTags.
	Insert(ctx context.Context, b *models.Bookmark) error

	// Update applies the non-nil scalar fields of p (tags are ignored).
	Update(ctx context.Context, id string, p models.BookmarkPatch) error

	// Delete removes the bookmark and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// ReplaceTags deletes all associations of the bookmark and inserts tagIDs.
	ReplaceTags(ctx context.Context, bookmarkID string, tagIDs []string) error
}
