package tags

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/dbtest"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

var created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func TestInsertGetAndList(t *testing.T) {
	db := dbtest.Open(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	wwii := &models.Tag{ID: "t1", Name: "wwii", Label: "WWII", CreatedAt: created}
	navy := &models.Tag{ID: "t2", Name: "navy", Label: "Navy", CreatedAt: created}
	require.NoError(t, r.Insert(ctx, wwii))
	require.NoError(t, r.Insert(ctx, navy))

	got, err := r.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, wwii, got)

	got, err = r.GetByName(ctx, "navy")
	require.NoError(t, err)
	assert.Equal(t, "t2", got.ID)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "navy", list[0].Name)
	assert.Equal(t, "wwii", list[1].Name)

	_, err = r.Get(ctx, "absent")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetByName(ctx, "absent")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInsert_DuplicateName(t *testing.T) {
	r := NewSQLiteRepository(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.Tag{ID: "t1", Name: "wwii", Label: "WWII", CreatedAt: created}))
	err := r.Insert(ctx, &models.Tag{ID: "t2", Name: "wwii", Label: "wwii", CreatedAt: created})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRename(t *testing.T) {
	r := NewSQLiteRepository(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.Tag{ID: "t1", Name: "wwii", Label: "WWII", CreatedAt: created}))
	require.NoError(t, r.Insert(ctx, &models.Tag{ID: "t2", Name: "navy", Label: "Navy", CreatedAt: created}))

	require.NoError(t, r.Rename(ctx, "t1", "world war ii", "World War II"))
	got, err := r.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "world war ii", got.Name)
	assert.Equal(t, "World War II", got.Label)

	assert.ErrorIs(t, r.Rename(ctx, "t1", "navy", "NAVY"), common.ErrorAlreadyExists)
	assert.ErrorIs(t, r.Rename(ctx, "absent", "x", "X"), common.ErrorNotFound)
}

func TestDelete_CascadesAssociations(t *testing.T) {
	db := dbtest.Open(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.Tag{ID: "t1", Name: "wwii", Label: "WWII", CreatedAt: created}))
	_, err := db.Exec(`
		INSERT INTO categories (id, name, created_at) VALUES ('c1', 'Navy', 0);
		INSERT INTO bookmarks (id, archive_name, record_id, title, category_id, created_at)
			VALUES ('b1', 'NARA', '1', 't', 'c1', 0);
		INSERT INTO bookmark_tags (bookmark_id, tag_id) VALUES ('b1', 't1');`)
	require.NoError(t, err)

	tags, err := r.ForBookmark(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "t1", tags[0].ID)

	deleted, err := r.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 0, dbtest.Count(t, db, "bookmark_tags"))
	assert.Equal(t, 1, dbtest.Count(t, db, "bookmarks"))

	deleted, err = r.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, deleted)

	tags, err = r.ForBookmark(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, tags)
}
