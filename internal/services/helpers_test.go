package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/store"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// tickingClock advances by one second on every call so creation order is
// observable.
func tickingClock() timex.Clock {
	t := testNow
	return timex.ClockFunc(func() time.Time {
		t = t.Add(time.Second)
		return t
	})
}

func newTestServices(t *testing.T) (*Services, *store.Store) {
	t.Helper()
	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "archive.db"), logging.Discard(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return New(st, nil, tickingClock(), logging.Discard()), st
}

func mustCategory(t *testing.T, svc *Services, name string) *models.Category {
	t.Helper()
	c, err := svc.Categories.Create(context.Background(), CategoryInput{Name: name})
	require.NoError(t, err)
	return c
}

func mustTag(t *testing.T, svc *Services, label string) *models.Tag {
	t.Helper()
	tag, err := svc.Tags.Create(context.Background(), TagInput{Label: label})
	require.NoError(t, err)
	return tag
}

func strPtr(s string) *string { return &s }

func countRows(t *testing.T, st *store.Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
