// Package models defines the persisted entities: categories, tags,
// bookmarks and the sparse patches used to update them.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/hierarchy"
)

// BookmarkMode records how a bookmark was created.
type BookmarkMode string

const (
	BookmarkModeManual BookmarkMode = "manual"
	BookmarkModeSearch BookmarkMode = "search"
	BookmarkModeEdit   BookmarkMode = "edit"
)

// Valid reports whether m is a known mode.
func (m BookmarkMode) Valid() bool {
	switch m {
	case BookmarkModeManual, BookmarkModeSearch, BookmarkModeEdit:
		return true
	}
	return false
}

// DefaultCatalogWebURL is where catalog records can be viewed in a browser.
const DefaultCatalogWebURL = "https://catalog.archives.gov"

// Snapshot is a copy of a few canonical record fields taken when the
// bookmark was saved. It is never refreshed from the catalog.
type Snapshot struct {
	Level              hierarchy.Level `json:"level"`
	LocalType          string          `json:"localType,omitempty"`
	DscHead            string          `json:"dscHead,omitempty"`
	DigitalObjectCount int             `json:"digitalObjectCount"`
}

// NewSnapshot captures the snapshot fields of rec.
func NewSnapshot(rec ead.Record) Snapshot {
	return Snapshot{
		Level:              rec.Description.Level,
		LocalType:          rec.Description.LocalType,
		DscHead:            rec.Description.DscHead,
		DigitalObjectCount: rec.DigitalObjectCount,
	}
}

// Bookmark is a saved reference to one archival record.
type Bookmark struct {
	ID          string          `json:"id"`
	Mode        BookmarkMode    `json:"mode"`
	ArchiveName string          `json:"archiveName"`
	RecordID    string          `json:"recordId"`
	Title       string          `json:"title"`
	Path        []ead.PathEntry `json:"path"`
	Description Snapshot        `json:"description"`
	CategoryID  string          `json:"categoryId"`
	Tags        []string        `json:"tags"`
	CustomName  string          `json:"customName"`
	Note        *string         `json:"note,omitempty"`
	SourceURL   string          `json:"sourceUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// BookmarkFromRecord prepares a bookmark for rec in the given category.
// The id and creation time are left for the service to assign.
func BookmarkFromRecord(rec ead.Record, categoryID, catalogWebURL string) Bookmark {
	if catalogWebURL == "" {
		catalogWebURL = DefaultCatalogWebURL
	}
	path := rec.Path
	if path == nil {
		path = []ead.PathEntry{}
	}
	return Bookmark{
		Mode:        BookmarkModeSearch,
		ArchiveName: common.SourceArchiveName,
		RecordID:    rec.Control.RecordID,
		Title:       rec.Control.FileDesc.Title,
		Path:        path,
		Description: NewSnapshot(rec),
		CategoryID:  categoryID,
		Tags:        []string{},
		SourceURL:   strings.TrimRight(catalogWebURL, "/") + "/id/" + rec.Control.RecordID,
	}
}

// BookmarkPatch is a sparse update; nil fields are left untouched. A
// non-nil Tags replaces the whole tag set, an empty slice clears it.
type BookmarkPatch struct {
	Title      *string   `json:"title,omitempty"`
	CustomName *string   `json:"customName,omitempty"`
	Note       *string   `json:"note,omitempty"`
	CategoryID *string   `json:"categoryId,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p BookmarkPatch) Empty() bool {
	return p.Title == nil && p.CustomName == nil && p.Note == nil && p.CategoryID == nil && p.Tags == nil
}
