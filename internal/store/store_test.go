package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

func TestOpen_CreatesDirectoryAndSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "archive.db")

	s, err := Open(ctx, path, logging.Discard(), nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, path, s.Path())

	var mode string
	require.NoError(t, s.DB().QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	list, err := s.Repos().Categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")

	s, err := Open(ctx, path, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Repos().Categories.Insert(ctx, &models.Category{ID: "c1", Name: "Navy", CreatedAt: time.Now()}))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path, nil, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Repos().Categories.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Navy", got.Name)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), MemoryPath, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "archive.db"), nil, nil)
	require.NoError(t, err)
	defer s.Close()

	boom := errors.New("boom")
	err = s.InTx(ctx, func(ctx context.Context, r Repositories) error {
		require.NoError(t, r.Categories.Insert(ctx, &models.Category{ID: "c1", Name: "Navy", CreatedAt: time.Now()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := s.Repos().Categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_LogsCreationAndSchemaVersion(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")

	var buf bytes.Buffer
	log, err := logging.New(logging.BackendSlog, "info", false, &buf)
	require.NoError(t, err)

	s, err := Open(ctx, path, log, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Contains(t, buf.String(), "created=true schema_version=1")

	buf.Reset()
	s, err = Open(ctx, path, log, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Contains(t, buf.String(), "created=false schema_version=1")
}
