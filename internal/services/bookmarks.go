package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/store"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

type BookmarkService interface {
	List(ctx context.Context) ([]models.Bookmark, error)
	Get(ctx context.Context, id string) (*models.Bookmark, error)
	// Create stores b with a server-assigned creation time. An empty id is
	// generated. Tags, when non-nil, become the bookmark's tag set.
	Create(ctx context.Context, b models.Bookmark) (*models.Bookmark, error)
	// Update applies a sparse patch; a non-nil Tags replaces the tag set.
	Update(ctx context.Context, id string, p models.BookmarkPatch) (*models.Bookmark, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
	Tags(ctx context.Context, id string) ([]models.Tag, error)
}

type bookmarkService struct {
	store *store.Store
	clock timex.Clock
	log   logging.Logger
}

func NewBookmarkService(st *store.Store, clock timex.Clock, log logging.Logger) BookmarkService {
	return &bookmarkService{store: st, clock: clock, log: log.With("component", "bookmarks")}
}

func (s *bookmarkService) List(ctx context.Context) ([]models.Bookmark, error) {
	list, err := s.store.Repos().Bookmarks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return list, nil
}

func (s *bookmarkService) Get(ctx context.Context, id string) (*models.Bookmark, error) {
	return s.store.Repos().Bookmarks.Get(ctx, id)
}

func (s *bookmarkService) Create(ctx context.Context, b models.Bookmark) (*models.Bookmark, error) {
	if err := s.prepare(&b); err != nil {
		return nil, err
	}

	var out *models.Bookmark
	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if err := r.Bookmarks.Insert(ctx, &b); err != nil {
			return err
		}
		if b.Tags != nil {
			if err := r.Bookmarks.ReplaceTags(ctx, b.ID, dedupe(b.Tags)); err != nil {
				return err
			}
		}
		var err error
		out, err = r.Bookmarks.Get(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}

	s.log.Debug(ctx, "bookmark created", "id", out.ID, "record", out.RecordID)
	return out, nil
}

func (s *bookmarkService) Update(ctx context.Context, id string, p models.BookmarkPatch) (*models.Bookmark, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}

	var out *models.Bookmark
	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if err := r.Bookmarks.Update(ctx, id, p); err != nil {
			return err
		}
		if p.Tags != nil {
			if err := r.Bookmarks.ReplaceTags(ctx, id, dedupe(*p.Tags)); err != nil {
				return err
			}
		}
		var err error
		out, err = r.Bookmarks.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update bookmark: %w", err)
	}
	return out, nil
}

func (s *bookmarkService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.Repos().Bookmarks.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if deleted {
		s.log.Debug(ctx, "bookmark deleted", "id", id)
	}
	return nil
}

func (s *bookmarkService) Tags(ctx context.Context, id string) ([]models.Tag, error) {
	return s.store.Repos().Tags.ForBookmark(ctx, id)
}

func (s *bookmarkService) prepare(b *models.Bookmark) error {
	b.Title = strings.TrimSpace(b.Title)
	b.RecordID = strings.TrimSpace(b.RecordID)
	switch {
	case b.Title == "":
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	case b.RecordID == "":
		return fmt.Errorf("%w: record id is required", common.ErrorValidation)
	case b.CategoryID == "":
		return fmt.Errorf("%w: category id is required", common.ErrorValidation)
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Mode == "" {
		b.Mode = models.BookmarkModeManual
	}
	if !b.Mode.Valid() {
		return fmt.Errorf("%w: unknown bookmark mode %q", common.ErrorValidation, b.Mode)
	}
	if b.ArchiveName == "" {
		b.ArchiveName = common.SourceArchiveName
	}
	if b.Path == nil {
		b.Path = []ead.PathEntry{}
	}
	b.CreatedAt = s.clock.Now().UTC()
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
