package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/dbx"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `SELECT id, name, sort_order, color, created_at FROM categories`

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY sort_order ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	result := []models.Category{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Category, error) {
	c, err := scan(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, c *models.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, sort_order, color, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Order, nullable(c.Color), c.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", dbx.Classify(err))
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, p models.CategoryPatch) error {
	var (
		sets []string
		args []any
	)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Order != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *p.Order)
	}
	if p.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, nullable(p.Color))
	}
	if len(sets) == 0 {
		_, err := r.Get(ctx, id)
		return err
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", dbx.Classify(err))
	}
	return expectOne(res, id)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) NextOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM categories`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next category order: %w", err)
	}
	return next, nil
}

func (r *SQLiteRepository) SetOrder(ctx context.Context, id string, order int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET sort_order = ? WHERE id = ?`, order, id)
	if err != nil {
		return fmt.Errorf("failed to set category order: %w", err)
	}
	return expectOne(res, id)
}

func (r *SQLiteRepository) CountBookmarks(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE category_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count category bookmarks: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Category, error) {
	var (
		c       models.Category
		color   sql.NullString
		created int64
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Order, &color, &created); err != nil {
		return nil, err
	}
	if color.Valid {
		c.Color = &color.String
	}
	c.CreatedAt = time.UnixMilli(created).UTC()
	return &c, nil
}

func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, common.ErrorNotFound)
	}
	return nil
}
