// Package hierarchy defines the archival levels of description and their
// ordering. Values follow the EAD3 @level vocabulary so they can be written
// into canonical records unchanged.
package hierarchy

import "strings"

// Level is a canonical level of description.
type Level string

const (
	LevelRecordGroup Level = "recordgrp"
	LevelCollection  Level = "collection"
	LevelSeries      Level = "series"
	LevelFileUnit    Level = "file"
	LevelItem        Level = "item"
	LevelOther       Level = "otherlevel"
)

// All returns every canonical level, root first.
func All() []Level {
	return []Level{
		LevelRecordGroup,
		LevelCollection,
		LevelSeries,
		LevelFileUnit,
		LevelItem,
		LevelOther,
	}
}

var ranks = map[Level]int{
	LevelRecordGroup: 0,
	LevelCollection:  1,
	LevelSeries:      2,
	LevelFileUnit:    3,
	LevelItem:        4,
	LevelOther:       5,
}

var labels = map[Level]string{
	LevelRecordGroup: "Record Group",
	LevelCollection:  "Collection",
	LevelSeries:      "Series",
	LevelFileUnit:    "File Unit",
	LevelItem:        "Item",
	LevelOther:       "Other",
}

// aliases are keyed by the squashed form produced by squash.
var aliases = map[string]Level{
	"recordgroup": LevelRecordGroup,
	"recordgrp":   LevelRecordGroup,
	"rg":          LevelRecordGroup,
	"collection":  LevelCollection,
	"series":      LevelSeries,
	"subseries":   LevelSeries,
	"fileunit":    LevelFileUnit,
	"file":        LevelFileUnit,
	"item":        LevelItem,
	"itemav":      LevelItem,
	"other":       LevelOther,
	"otherlevel":  LevelOther,
}

// Normalize maps a free-text level (as sent by the catalog API or produced by
// Label) to a canonical Level. Unknown or empty input yields LevelOther.
func Normalize(s string) Level {
	if l, ok := aliases[squash(s)]; ok {
		return l
	}
	return LevelOther
}

// Rank returns the depth of l in the hierarchy; record groups are lowest.
func (l Level) Rank() int {
	if r, ok := ranks[l]; ok {
		return r
	}
	return ranks[LevelOther]
}

// Label returns the human readable name of l.
func (l Level) Label() string {
	if s, ok := labels[l]; ok {
		return s
	}
	return labels[LevelOther]
}

func (l Level) String() string { return string(l) }

// squash lowercases s and drops separators so "File Unit", "file_unit"
// and "fileUnit" compare equal.
func squash(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '_', '-', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
