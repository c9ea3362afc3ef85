// Package ead holds the canonical archival record produced from catalog
// search hits. The shape loosely follows EAD3: a control block describing
// the record itself, a description block describing the archival material,
// the path of ancestors back to the record group and a digital object count.
//
// Records are value objects. They are rebuilt on every query and never
// persisted directly; bookmarks keep a snapshot instead.
package ead

import "github.com/dmitrijs2005/archivekeeper/internal/hierarchy"

// Record is one canonical archival record.
type Record struct {
	Control            Control     `json:"control"`
	Description        Description `json:"description"`
	Path               []PathEntry `json:"path"`
	DigitalObjectCount int         `json:"digitalObjectCount"`
}

type Control struct {
	RecordID           string            `json:"recordId"`
	FileDesc           FileDesc          `json:"fileDesc"`
	MaintenanceAgency  MaintenanceAgency `json:"maintenanceAgency"`
	MaintenanceHistory []Event           `json:"maintenanceHistory"`
}

type FileDesc struct {
	Title      string `json:"title"`
	Publisher  string `json:"publisher"`
	IngestDate string `json:"ingestDate"`
	Note       string `json:"note,omitempty"`
}

type MaintenanceAgency struct {
	Code string `json:"agencyCode"`
	Name string `json:"agencyName"`
}

// Event is a dated maintenance or availability event.
type Event struct {
	Type     string `json:"eventType"`
	DateTime string `json:"eventDateTime"`
	Agent    string `json:"agent,omitempty"`
}

const (
	EventCreated   = "created"
	EventAvailable = "available"
)

type Description struct {
	Level          hierarchy.Level `json:"level"`
	LocalType      string          `json:"localType,omitempty"`
	DscHead        string          `json:"dscHead,omitempty"`
	DID            DID             `json:"did"`
	DigitalObjects []DigitalObject `json:"digitalObjects,omitempty"`
	Restrictions   []Restriction   `json:"restrictions,omitempty"`
}

// DID is the descriptive identification block.
type DID struct {
	Title       string    `json:"unitTitle"`
	UnitID      string    `json:"unitId"`
	UnitDate    *UnitDate `json:"unitDate,omitempty"`
	Repository  string    `json:"repository,omitempty"`
	Origination string    `json:"origination,omitempty"`
	Abstract    string    `json:"abstract,omitempty"`
}

// UnitDate keeps the human text of a date range next to its normalized
// start/end form.
type UnitDate struct {
	Text   string `json:"text"`
	Normal string `json:"normal"`
}

type DigitalObject struct {
	ID       string  `json:"id,omitempty"`
	Filename string  `json:"filename"`
	Type     string  `json:"type,omitempty"`
	URL      string  `json:"url,omitempty"`
	Size     int64   `json:"size,omitempty"`
	Events   []Event `json:"events"`
}

// RestrictionKind tags a restriction statement.
type RestrictionKind string

const (
	RestrictionAccess RestrictionKind = "accessrestrict"
	RestrictionUse    RestrictionKind = "userestrict"
)

// StatementKind says which source field a restriction statement came from.
type StatementKind string

const (
	StatementStatus   StatementKind = "status"
	StatementSpecific StatementKind = "specific"
	StatementNote     StatementKind = "note"
)

// Restriction is one group of restriction statements of the same kind.
type Restriction struct {
	Kind       RestrictionKind `json:"kind"`
	Head       string          `json:"head"`
	Statements []Statement     `json:"statements"`
}

type Statement struct {
	Kind StatementKind `json:"kind"`
	Text string        `json:"text"`
}

// PathEntry is one ancestor on the way to the root of the hierarchy.
type PathEntry struct {
	ID    string          `json:"id"`
	Level hierarchy.Level `json:"level"`
	Label string          `json:"label"`
}
