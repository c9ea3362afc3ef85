// Package categories persists bookmark categories.
//
// Categories carry a dense, zero-based display order. Bookmarks reference
// categories with ON DELETE RESTRICT, so deleting a category that still has
// bookmarks fails with common.ErrorInvalidReference; callers translate that
// into an "in use" condition.
//
//	repo := categories.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, &models.Category{ID: id, Name: "Navy"})
//	list, _ := repo.List(ctx)
package categories
