package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
)

func TestTag_CreateCanonicalName(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	tag, err := svc.Tags.Create(ctx, TagInput{Label: "  World War II "})
	require.NoError(t, err)
	assert.Equal(t, "world war ii", tag.Name)
	assert.Equal(t, "World War II", tag.Label)

	_, err = svc.Tags.Create(ctx, TagInput{Label: "WORLD WAR II"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = svc.Tags.Create(ctx, TagInput{Label: "   "})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestTag_EnsureIsGetOrCreate(t *testing.T) {
	svc, st := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Tags.Ensure(ctx, "Navy")
	require.NoError(t, err)
	b, err := svc.Tags.Ensure(ctx, "NAVY ")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, "Navy", b.Label, "existing label is kept")
	assert.Equal(t, 1, countRows(t, st, "tags"))
}

// Rename recomputes the canonical name. Bookmarks hold tag ids, so their
// associations survive the rename.
func TestTag_RenameRecomputesNameAndKeepsAssociations(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cat := mustCategory(t, svc, "Navy")
	tag := mustTag(t, svc, "WWII")

	_, err := svc.Bookmarks.Create(ctx, newBookmark(cat.ID, tag.ID))
	require.NoError(t, err)

	renamed, err := svc.Tags.Rename(ctx, tag.ID, "Second World War")
	require.NoError(t, err)
	assert.Equal(t, "second world war", renamed.Name)
	assert.Equal(t, "Second World War", renamed.Label)

	b, err := svc.Bookmarks.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{tag.ID}, b.Tags)

	mustTag(t, svc, "Pacific")
	_, err = svc.Tags.Rename(ctx, tag.ID, "pacific")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = svc.Tags.Rename(ctx, "absent", "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTag_DeleteCascades(t *testing.T) {
	svc, st := newTestServices(t)
	ctx := context.Background()
	cat := mustCategory(t, svc, "Navy")
	t1, t2 := mustTag(t, svc, "WWII"), mustTag(t, svc, "Pacific")

	_, err := svc.Bookmarks.Create(ctx, newBookmark(cat.ID, t1.ID, t2.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Tags.Delete(ctx, t1.ID))
	require.NoError(t, svc.Tags.Delete(ctx, t1.ID))

	b, err := svc.Bookmarks.Get(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{t2.ID}, b.Tags)
	assert.Equal(t, 1, countRows(t, st, "bookmark_tags"))
}
