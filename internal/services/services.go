// Package services implements the application operations on top of the
// store and the catalog client. Every multi-statement write runs in one
// transaction.
package services

import (
	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/mapper"
	"github.com/dmitrijs2005/archivekeeper/internal/store"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

// Services bundles every service the outer surfaces need.
type Services struct {
	Bookmarks  BookmarkService
	Categories CategoryService
	Tags       TagService
	Settings   SettingsService
	Search     SearchService
}

// New wires services over st. client may be nil when no catalog access is
// needed; Search is then nil as well.
func New(st *store.Store, client catalog.Client, clock timex.Clock, log logging.Logger) *Services {
	if clock == nil {
		clock = timex.SystemClock
	}
	if log == nil {
		log = logging.Discard()
	}
	s := &Services{
		Bookmarks:  NewBookmarkService(st, clock, log),
		Categories: NewCategoryService(st, clock, log),
		Tags:       NewTagService(st, clock, log),
		Settings:   NewSettingsService(st, log),
	}
	if client != nil {
		s.Search = NewSearchService(client, mapper.New(clock), log)
	}
	return s
}
