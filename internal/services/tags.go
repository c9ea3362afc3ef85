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

type TagInput struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
}

type TagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, id string) (*models.Tag, error)
	// Create fails with common.ErrorAlreadyExists when the canonical name is taken.
	Create(ctx context.Context, in TagInput) (*models.Tag, error)
	// Ensure returns the tag named after label, creating it on first use.
	Ensure(ctx context.Context, label string) (*models.Tag, error)
	// Rename sets a new label and recomputes the canonical name from it.
	// Bookmarks reference tags by id and are unaffected.
	Rename(ctx context.Context, id, label string) (*models.Tag, error)
	// Delete removes the tag from every bookmark. It is idempotent.
	Delete(ctx context.Context, id string) error
}

type tagService struct {
	store *store.Store
	clock timex.Clock
	log   logging.Logger
}

func NewTagService(st *store.Store, clock timex.Clock, log logging.Logger) TagService {
	return &tagService{store: st, clock: clock, log: log.With("component", "tags")}
}

func (s *tagService) List(ctx context.Context) ([]models.Tag, error) {
	list, err := s.store.Repos().Tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return list, nil
}

func (s *tagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	return s.store.Repos().Tags.Get(ctx, id)
}

func (s *tagService) Create(ctx context.Context, in TagInput) (*models.Tag, error) {
	t, err := s.newTag(in)
	if err != nil {
		return nil, err
	}
	if err := s.store.Repos().Tags.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return t, nil
}

func (s *tagService) Ensure(ctx context.Context, label string) (*models.Tag, error) {
	t, err := s.newTag(TagInput{Label: label})
	if err != nil {
		return nil, err
	}

	var out *models.Tag
	err = s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		existing, err := r.Tags.GetByName(ctx, t.Name)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		if err := r.Tags.Insert(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ensure tag: %w", err)
	}
	return out, nil
}

func (s *tagService) Rename(ctx context.Context, id, label string) (*models.Tag, error) {
	label = strings.TrimSpace(label)
	name := models.TagName(label)
	if name == "" {
		return nil, fmt.Errorf("%w: tag label is required", common.ErrorValidation)
	}

	var out *models.Tag
	err := s.store.InTx(ctx, func(ctx context.Context, r store.Repositories) error {
		if err := r.Tags.Rename(ctx, id, name, label); err != nil {
			return err
		}
		var err error
		out, err = r.Tags.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("rename tag: %w", err)
	}
	return out, nil
}

func (s *tagService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Repos().Tags.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (s *tagService) newTag(in TagInput) (*models.Tag, error) {
	label := strings.TrimSpace(in.Label)
	name := models.TagName(label)
	if name == "" {
		return nil, fmt.Errorf("%w: tag label is required", common.ErrorValidation)
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return &models.Tag{ID: id, Name: name, Label: label, CreatedAt: s.clock.Now().UTC()}, nil
}
