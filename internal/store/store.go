// Package store owns the single SQLite handle of the application. Open
// creates the database file if needed, applies the schema and hands out
// repositories bound either to the database or to a transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/archivekeeper/internal/dbx"
	"github.com/dmitrijs2005/archivekeeper/internal/filex"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/migrations"
	"github.com/dmitrijs2005/archivekeeper/internal/repositories/bookmarks"
	"github.com/dmitrijs2005/archivekeeper/internal/repositories/categories"
	"github.com/dmitrijs2005/archivekeeper/internal/repositories/settings"
	"github.com/dmitrijs2005/archivekeeper/internal/repositories/tags"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type Repositories struct {
	Categories categories.Repository
	Tags       tags.Repository
	Bookmarks  bookmarks.Repository
	Settings   settings.Repository
}

type Store struct {
	db    *sql.DB
	path  string
	log   logging.Logger
	clock timex.Clock
	repos Repositories
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string, log logging.Logger, clock timex.Clock) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	if clock == nil {
		clock = timex.SystemClock
	}

	created := path == MemoryPath
	if path != MemoryPath {
		abs, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, fmt.Errorf("prepare database directory: %w", err)
		}
		path = abs
		created = !filex.Exists(path)
	}

	db, err := dbx.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	version, err := migrations.Version(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}

	s := &Store{db: db, path: path, log: log, clock: clock}
	s.repos = s.bind(db)

	log.Info(ctx, "store opened", "path", path, "created", created, "schema_version", version)
	return s, nil
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Path() string { return s.path }

// Repos returns repositories bound to the database.
func (s *Store) Repos() Repositories { return s.repos }

// InTx runs fn with repositories bound to one transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.bind(tx))
	})
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	s.log.Info(context.Background(), "store closed", "path", s.path)
	return nil
}

func (s *Store) bind(db dbx.DBTX) Repositories {
	return Repositories{
		Categories: categories.NewSQLiteRepository(db),
		Tags:       tags.NewSQLiteRepository(db),
		Bookmarks:  bookmarks.NewSQLiteRepository(db),
		Settings:   settings.NewSQLiteRepository(db, s.clock),
	}
}
