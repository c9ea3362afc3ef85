package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Tag, error) {
	return r.query(ctx, `SELECT id, name, label, created_at FROM tags ORDER BY name ASC`)
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Tag, error) {
	return r.one(ctx, `SELECT id, name, label, created_at FROM tags WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return r.one(ctx, `SELECT id, name, label, created_at FROM tags WHERE name = ?`, name)
}

func (r *SQLiteRepository) Insert(ctx context.Context, t *models.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, label, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.Label, t.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert tag: %w", dbx.Classify(err))
	}
	return nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, id, name, label string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tags SET name = ?, label = ? WHERE id = ?`, name, label, id)
	if err != nil {
		return fmt.Errorf("failed to rename tag: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tag %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) ForBookmark(ctx context.Context, bookmarkID string) ([]models.Tag, error) {
	return r.query(ctx, `
		SELECT t.id, t.name, t.label, t.created_at
		FROM tags t
		JOIN bookmark_tags bt ON bt.tag_id = t.id
		WHERE bt.bookmark_id = ?
		ORDER BY t.name ASC`, bookmarkID)
}

func (r *SQLiteRepository) one(ctx context.Context, query string, arg string) (*models.Tag, error) {
	var (
		t       models.Tag
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Name, &t.Label, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %s: %w", arg, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	t.CreatedAt = time.UnixMilli(created).UTC()
	return &t, nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer rows.Close()

	result := []models.Tag{}
	for rows.Next() {
		var (
			t       models.Tag
			created int64
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Label, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = time.UnixMilli(created).UTC()
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
