package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/hierarchy"
)

func TestBookmarkFromRecord(t *testing.T) {
	rec := ead.Record{
		Control: ead.Control{RecordID: "73088101", FileDesc: ead.FileDesc{Title: "Surrender"}},
		Description: ead.Description{
			Level:     hierarchy.LevelItem,
			LocalType: "Photographs",
		},
		DigitalObjectCount: 3,
	}

	b := BookmarkFromRecord(rec, "cat-1", "https://catalog.example.org/")

	assert.Equal(t, BookmarkModeSearch, b.Mode)
	assert.Equal(t, "NARA", b.ArchiveName)
	assert.Equal(t, "73088101", b.RecordID)
	assert.Equal(t, "Surrender", b.Title)
	assert.Equal(t, "cat-1", b.CategoryID)
	assert.Equal(t, "https://catalog.example.org/id/73088101", b.SourceURL)
	assert.Equal(t, Snapshot{Level: hierarchy.LevelItem, LocalType: "Photographs", DigitalObjectCount: 3}, b.Description)
	assert.NotNil(t, b.Path)
	assert.NotNil(t, b.Tags)

	b = BookmarkFromRecord(rec, "cat-1", "")
	assert.Equal(t, "https://catalog.archives.gov/id/73088101", b.SourceURL)
}

func TestBookmarkPatch_TagsPresence(t *testing.T) {
	var p BookmarkPatch
	require.NoError(t, json.Unmarshal([]byte(`{"note":"x"}`), &p))
	assert.Nil(t, p.Tags)
	assert.False(t, p.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"tags":[]}`), &p))
	require.NotNil(t, p.Tags)
	assert.Empty(t, *p.Tags)

	assert.True(t, BookmarkPatch{}.Empty())
	assert.True(t, CategoryPatch{}.Empty())
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "world war ii", TagName("  World War II "))
	assert.Equal(t, "", TagName("   "))
}

func TestBookmarkMode_Valid(t *testing.T) {
	for _, m := range []BookmarkMode{BookmarkModeManual, BookmarkModeSearch, BookmarkModeEdit} {
		assert.True(t, m.Valid())
	}
	assert.False(t, BookmarkMode("import").Valid())
}
