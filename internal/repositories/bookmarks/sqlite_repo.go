package bookmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/dbx"
	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

// tagSeparator joins tag ids inside GROUP_CONCAT; ids never contain it.
const tagSeparator = "\x1f"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectWithTags = `
	SELECT b.id, b.mode, b.archive_name, b.record_id, b.title, b.path, b.description,
	       b.category_id, b.custom_name, b.note, b.source_url, b.created_at,
	       COALESCE(GROUP_CONCAT(bt.tag_id, char(31)), '')
	FROM bookmarks b
	LEFT JOIN bookmark_tags bt ON bt.bookmark_id = b.id`

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, selectWithTags+`
	GROUP BY b.id
	ORDER BY b.created_at DESC, b.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select bookmarks: %w", err)
	}
	defer rows.Close()

	result := []models.Bookmark{}
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Bookmark, error) {
	b, err := scan(r.db.QueryRowContext(ctx, selectWithTags+`
	WHERE b.id = ?
	GROUP BY b.id`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bookmark %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, b *models.Bookmark) error {
	path, err := json.Marshal(nonNilPath(b.Path))
	if err != nil {
		return fmt.Errorf("failed to encode bookmark path: %w", err)
	}
	desc, err := json.Marshal(b.Description)
	if err != nil {
		return fmt.Errorf("failed to encode bookmark description: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, mode, archive_name, record_id, title, path, description,
		                       category_id, custom_name, note, source_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, string(b.Mode), b.ArchiveName, b.RecordID, b.Title, string(path), string(desc),
		b.CategoryID, b.CustomName, b.Note, b.SourceURL, b.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", dbx.Classify(err))
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, p models.BookmarkPatch) error {
	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.CustomName != nil {
		sets = append(sets, "custom_name = ?")
		args = append(args, *p.CustomName)
	}
	if p.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *p.Note)
	}
	if p.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *p.CategoryID)
	}
	if len(sets) == 0 {
		return r.exists(ctx, id)
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE bookmarks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update bookmark: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bookmark %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) ReplaceTags(ctx context.Context, bookmarkID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmark_tags WHERE bookmark_id = ?`, bookmarkID); err != nil {
		return fmt.Errorf("failed to clear bookmark tags: %w", err)
	}
	for _, tagID := range tagIDs {
		// OR IGNORE only swallows duplicate pairs; foreign keys are still checked.
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO bookmark_tags (bookmark_id, tag_id) VALUES (?, ?)`, bookmarkID, tagID)
		if err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagID, dbx.Classify(err))
		}
	}
	return nil
}

func (r *SQLiteRepository) exists(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookmarks WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bookmark %s: %w", id, common.ErrorNotFound)
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Bookmark, error) {
	var (
		b          models.Bookmark
		mode       string
		path, desc string
		note       sql.NullString
		created    int64
		tags       string
	)
	err := s.Scan(&b.ID, &mode, &b.ArchiveName, &b.RecordID, &b.Title, &path, &desc,
		&b.CategoryID, &b.CustomName, &note, &b.SourceURL, &created, &tags)
	if err != nil {
		return nil, err
	}

	b.Mode = models.BookmarkMode(mode)
	b.CreatedAt = time.UnixMilli(created).UTC()
	if note.Valid {
		b.Note = &note.String
	}

	b.Path = []ead.PathEntry{}
	if path != "" {
		if err := json.Unmarshal([]byte(path), &b.Path); err != nil {
			return nil, fmt.Errorf("bookmark %s: bad path: %w", b.ID, err)
		}
	}
	if desc != "" {
		if err := json.Unmarshal([]byte(desc), &b.Description); err != nil {
			return nil, fmt.Errorf("bookmark %s: bad description: %w", b.ID, err)
		}
	}

	b.Tags = splitTags(tags)
	return &b, nil
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	ids := strings.Split(s, tagSeparator)
	sort.Strings(ids)
	return ids
}

func nonNilPath(p []ead.PathEntry) []ead.PathEntry {
	if p == nil {
		return []ead.PathEntry{}
	}
	return p
}
