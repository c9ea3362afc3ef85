package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/services"
)

// PhaseCount tallies one migration phase.
type PhaseCount struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// Result is the outcome of a migration. Success is false only when a phase
// failed, in which case the error is returned as well.
type Result struct {
	Success         bool       `json:"success"`
	AlreadyMigrated bool       `json:"alreadyMigrated,omitempty"`
	Categories      PhaseCount `json:"categories"`
	Tags            PhaseCount `json:"tags"`
	Bookmarks       PhaseCount `json:"bookmarks"`
}

type Migrator struct {
	svc *services.Services
	log logging.Logger
}

func NewMigrator(svc *services.Services, log logging.Logger) *Migrator {
	if log == nil {
		log = logging.Discard()
	}
	return &Migrator{svc: svc, log: log.With("component", "legacy")}
}

// Run migrates the legacy files in dir unless the migration marker is
// already set.
func (m *Migrator) Run(ctx context.Context, dir string) (Result, error) {
	done, err := m.svc.Settings.GetBool(ctx, services.SettingLegacyStorageMigrated)
	if err != nil {
		return Result{}, err
	}
	if done {
		m.log.Debug(ctx, "legacy storage already migrated")
		return Result{Success: true, AlreadyMigrated: true}, nil
	}

	data, err := LoadDir(dir)
	if err != nil {
		return Result{}, err
	}
	return m.Migrate(ctx, data)
}

// Migrate creates categories, then tags, then bookmarks. Items that already
// exist are skipped; any other failure aborts the migration and leaves the
// marker unset.
//
// When a legacy category or tag collides with an existing one by name, its
// bookmarks are pointed at the existing row instead.
func (m *Migrator) Migrate(ctx context.Context, data *Data) (Result, error) {
	var res Result
	if data == nil {
		data = &Data{}
	}

	categoryIDs, err := m.migrateCategories(ctx, data.Categories, &res.Categories)
	if err != nil {
		return res, err
	}
	tagIDs, err := m.migrateTags(ctx, data.Tags, &res.Tags)
	if err != nil {
		return res, err
	}
	if err := m.migrateBookmarks(ctx, data.Bookmarks, categoryIDs, tagIDs, &res.Bookmarks); err != nil {
		return res, err
	}

	err = m.svc.Settings.Save(ctx, map[string]json.RawMessage{
		services.SettingLegacyStorageMigrated: json.RawMessage(`true`),
	})
	if err != nil {
		return res, fmt.Errorf("failed to set migration marker: %w", err)
	}

	res.Success = true
	m.log.Info(ctx, "legacy storage migrated",
		"categories", res.Categories.Created, "tags", res.Tags.Created, "bookmarks", res.Bookmarks.Created,
		"skipped", res.Categories.Skipped+res.Tags.Skipped+res.Bookmarks.Skipped)
	return res, nil
}

func (m *Migrator) migrateCategories(ctx context.Context, cats []Category, n *PhaseCount) (map[string]string, error) {
	remap := map[string]string{}
	for _, c := range cats {
		_, err := m.svc.Categories.Create(ctx, services.CategoryInput{ID: c.ID, Name: c.Name, Order: c.Order, Color: c.Color})
		if err == nil {
			n.Created++
			continue
		}
		if !errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("migrate category %s: %w", c.ID, err)
		}
		n.Skipped++

		if _, gerr := m.svc.Categories.Get(ctx, c.ID); gerr == nil {
			continue
		}
		existing, err := m.categoryByName(ctx, c.Name)
		if err != nil {
			return nil, err
		}
		if existing != "" {
			remap[c.ID] = existing
		}
	}
	m.log.Debug(ctx, "legacy categories done", "created", n.Created, "skipped", n.Skipped)
	return remap, nil
}

func (m *Migrator) categoryByName(ctx context.Context, name string) (string, error) {
	list, err := m.svc.Categories.List(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range list {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return "", nil
}

func (m *Migrator) migrateTags(ctx context.Context, tags []Tag, n *PhaseCount) (map[string]string, error) {
	remap := map[string]string{}
	for _, t := range tags {
		_, err := m.svc.Tags.Create(ctx, services.TagInput{ID: t.ID, Label: t.DisplayLabel()})
		if err == nil {
			n.Created++
			continue
		}
		if !errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("migrate tag %s: %w", t.ID, err)
		}
		n.Skipped++

		if _, gerr := m.svc.Tags.Get(ctx, t.ID); gerr == nil {
			continue
		}
		// Same canonical name under another id.
		existing, err := m.svc.Tags.Ensure(ctx, t.DisplayLabel())
		if err != nil {
			return nil, fmt.Errorf("migrate tag %s: %w", t.ID, err)
		}
		remap[t.ID] = existing.ID
	}
	m.log.Debug(ctx, "legacy tags done", "created", n.Created, "skipped", n.Skipped)
	return remap, nil
}

func (m *Migrator) migrateBookmarks(ctx context.Context, list []models.Bookmark, categoryIDs, tagIDs map[string]string, n *PhaseCount) error {
	for _, b := range list {
		if b.ID == "" {
			b.ID = legacyBookmarkID(b)
		}
		if id, ok := categoryIDs[b.CategoryID]; ok {
			b.CategoryID = id
		}
		if b.Tags != nil {
			tags := make([]string, len(b.Tags))
			for i, t := range b.Tags {
				if id, ok := tagIDs[t]; ok {
					t = id
				}
				tags[i] = t
			}
			b.Tags = tags
		}

		_, err := m.svc.Bookmarks.Create(ctx, b)
		if errors.Is(err, common.ErrorAlreadyExists) {
			n.Skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("migrate bookmark %s: %w", b.ID, err)
		}
		n.Created++
	}
	m.log.Debug(ctx, "legacy bookmarks done", "created", n.Created, "skipped", n.Skipped)
	return nil
}

// legacyBookmarkID derives a stable id for bookmarks saved without one, so
// a repeated run skips them instead of creating copies.
func legacyBookmarkID(b models.Bookmark) string {
	key := b.ArchiveName + "/" + b.RecordID + "/" + b.CategoryID
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}
