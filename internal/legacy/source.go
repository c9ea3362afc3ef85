package legacy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

// File names inside a legacy storage directory.
const (
	CategoriesFile = "categories.json"
	TagsFile       = "tags.json"
	BookmarksFile  = "bookmarks.json"
)

type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Order *int    `json:"order,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Tag is a legacy tag. Older files only carry a name, which then doubles
// as the label.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

func (t Tag) DisplayLabel() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// Data is the full content of a legacy store.
type Data struct {
	Categories []Category        `json:"categories"`
	Tags       []Tag             `json:"tags"`
	Bookmarks  []models.Bookmark `json:"bookmarks"`
}

// Empty reports whether there is nothing to migrate.
func (d *Data) Empty() bool {
	return len(d.Categories) == 0 && len(d.Tags) == 0 && len(d.Bookmarks) == 0
}

// LoadDir reads the three legacy arrays from dir. A missing file counts as
// an empty array.
func LoadDir(dir string) (*Data, error) {
	d := &Data{}
	if err := readArray(filepath.Join(dir, CategoriesFile), &d.Categories); err != nil {
		return nil, err
	}
	if err := readArray(filepath.Join(dir, TagsFile), &d.Tags); err != nil {
		return nil, err
	}
	if err := readArray(filepath.Join(dir, BookmarksFile), &d.Bookmarks); err != nil {
		return nil, err
	}
	return d, nil
}

func readArray(path string, out any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
