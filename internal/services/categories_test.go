package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

func ids(list []models.Category) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func TestCategory_CreateAppends(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := mustCategory(t, svc, "A")
	b := mustCategory(t, svc, "B")
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)

	order := 10
	c, err := svc.Categories.Create(ctx, CategoryInput{ID: "c", Name: " C ", Order: &order, Color: strPtr("#fff")})
	require.NoError(t, err)
	assert.Equal(t, "c", c.ID)
	assert.Equal(t, "C", c.Name)
	assert.Equal(t, 10, c.Order)

	d := mustCategory(t, svc, "D")
	assert.Equal(t, 11, d.Order)
}

func TestCategory_CreateValidationAndDuplicates(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Categories.Create(ctx, CategoryInput{Name: "  "})
	assert.ErrorIs(t, err, common.ErrorValidation)

	mustCategory(t, svc, "Navy")
	_, err = svc.Categories.Create(ctx, CategoryInput{Name: "Navy"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCategory_Update(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	c := mustCategory(t, svc, "Navy")

	got, err := svc.Categories.Update(ctx, c.ID, models.CategoryPatch{Color: strPtr("blue")})
	require.NoError(t, err)
	assert.Equal(t, "Navy", got.Name)
	require.NotNil(t, got.Color)
	assert.Equal(t, "blue", *got.Color)

	_, err = svc.Categories.Update(ctx, c.ID, models.CategoryPatch{Name: strPtr("")})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Categories.Update(ctx, "absent", models.CategoryPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCategory_DeleteInUse(t *testing.T) {
	svc, st := newTestServices(t)
	ctx := context.Background()
	c := mustCategory(t, svc, "Navy")

	_, err := svc.Bookmarks.Create(ctx, newBookmark(c.ID))
	require.NoError(t, err)

	err = svc.Categories.Delete(ctx, c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorInUse)
	assert.Contains(t, err.Error(), "1 bookmark")
	assert.Equal(t, 1, countRows(t, st, "categories"))

	require.NoError(t, svc.Bookmarks.Delete(ctx, "b1"))
	require.NoError(t, svc.Categories.Delete(ctx, c.ID))
	require.NoError(t, svc.Categories.Delete(ctx, c.ID))
	assert.Equal(t, 0, countRows(t, st, "categories"))
}

func TestCategory_Reorder(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	c1 := mustCategory(t, svc, "one")
	c2 := mustCategory(t, svc, "two")
	c3 := mustCategory(t, svc, "three")

	got, err := svc.Categories.Reorder(ctx, []string{c2.ID, c1.ID, c3.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{c2.ID, c1.ID, c3.ID}, ids(got))

	list, err := svc.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{c2.ID, c1.ID, c3.ID}, ids(list))
	for i, c := range list {
		assert.Equal(t, i, c.Order, "orders are dense and zero based")
	}
}

func TestCategory_ReorderRejectsPartialLists(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	c1 := mustCategory(t, svc, "one")
	c2 := mustCategory(t, svc, "two")

	cases := map[string][]string{
		"missing":   {c1.ID},
		"unknown":   {c1.ID, "ghost"},
		"duplicate": {c1.ID, c1.ID},
		"extra":     {c1.ID, c2.ID, "ghost"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Categories.Reorder(ctx, in)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}

	list, err := svc.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{c1.ID, c2.ID}, ids(list), "rejected reorder leaves orders untouched")
}
