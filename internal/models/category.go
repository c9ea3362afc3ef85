package models

import (
	"strings"
	"time"
)

// Category groups bookmarks. Order is dense and zero based.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryPatch is a sparse update. An empty Color clears the color.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Order *int    `json:"order,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Order == nil && p.Color == nil
}

// Tag is a free-form label. Name is the canonical, lowercased form of
// Label and is unique.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
}

// TagName returns the canonical name for a display label.
func TagName(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
