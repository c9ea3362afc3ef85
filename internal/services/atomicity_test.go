package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

// readUntil calls read in a loop on its own goroutine until stop is set,
// always at least once, and returns how many reads completed.
func readUntil(stop *atomic.Bool, read func()) <-chan int {
	done := make(chan int, 1)
	go func() {
		n := 0
		for {
			read()
			n++
			if stop.Load() {
				break
			}
		}
		done <- n
	}()
	return done
}

func TestCategory_ReorderIsNeverObservedHalfDone(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	var catIDs []string
	for i := 0; i < 6; i++ {
		catIDs = append(catIDs, mustCategory(t, svc, fmt.Sprintf("cat-%d", i)).ID)
	}

	var stop atomic.Bool
	defer stop.Store(true)
	var mu sync.Mutex
	var violations []string
	reads := readUntil(&stop, func() {
		list, err := svc.Categories.List(ctx)
		if !assert.NoError(t, err) {
			return
		}
		seen := make(map[int]string, len(list))
		for _, c := range list {
			if other, dup := seen[c.Order]; dup {
				mu.Lock()
				violations = append(violations, fmt.Sprintf("order %d held by %s and %s", c.Order, other, c.ID))
				mu.Unlock()
			}
			seen[c.Order] = c.ID
		}
	})

	order := append([]string(nil), catIDs...)
	for i := 0; i < 40; i++ {
		order = append(order[1:], order[0])
		_, err := svc.Categories.Reorder(ctx, order)
		require.NoError(t, err)
	}
	stop.Store(true)

	assert.Positive(t, <-reads)
	assert.Empty(t, violations)

	list, err := svc.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, order, ids(list))
}

func TestBookmark_TagReplacementIsNeverObservedEmpty(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	cat := mustCategory(t, svc, "Navy")
	t1, t2, t3 := mustTag(t, svc, "WWII"), mustTag(t, svc, "Pacific"), mustTag(t, svc, "Navy")

	_, err := svc.Bookmarks.Create(ctx, newBookmark(cat.ID, t1.ID))
	require.NoError(t, err)

	var stop atomic.Bool
	defer stop.Store(true)
	var emptyReads atomic.Int32
	reads := readUntil(&stop, func() {
		b, err := svc.Bookmarks.Get(ctx, "b1")
		if !assert.NoError(t, err) {
			return
		}
		if len(b.Tags) == 0 {
			emptyReads.Add(1)
		}
	})

	sets := [][]string{{t1.ID, t2.ID}, {t3.ID}, {t2.ID, t3.ID}, {t1.ID}}
	for i := 0; i < 40; i++ {
		tags := sets[i%len(sets)]
		_, err := svc.Bookmarks.Update(ctx, "b1", models.BookmarkPatch{Tags: &tags})
		require.NoError(t, err)
	}
	stop.Store(true)

	assert.Positive(t, <-reads)
	assert.Zero(t, emptyReads.Load(), "a reader saw the bookmark without tags")
}
