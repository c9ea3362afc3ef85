// Package catalog describes the payloads of the National Archives catalog
// search API and provides a client for it.
//
// The upstream service omits fields freely, so every nested object is a
// pointer and every accessor on those objects is nil-safe. Consumers never
// need to check intermediate levels before reading a leaf.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SearchResponse is the envelope returned by /records/search and
// /records/parentId/{id}.
type SearchResponse struct {
	Body *SearchBody `json:"body"`
}

type SearchBody struct {
	Hits         *HitList                   `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
}

type HitList struct {
	Total *Total `json:"total"`
	Hits  []Hit  `json:"hits"`
}

type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// Hits returns the raw hits, or nil when the envelope is incomplete.
func (r *SearchResponse) Hits() []Hit {
	if r == nil || r.Body == nil || r.Body.Hits == nil {
		return nil
	}
	return r.Body.Hits.Hits
}

// Total returns the reported hit count, falling back to the number of hits
// actually present.
func (r *SearchResponse) Total() int {
	if r == nil || r.Body == nil || r.Body.Hits == nil {
		return 0
	}
	if r.Body.Hits.Total != nil {
		return r.Body.Hits.Total.Value
	}
	return len(r.Body.Hits.Hits)
}

// Aggregations returns the aggregation summary as raw JSON per bucket name.
func (r *SearchResponse) Aggregations() map[string]json.RawMessage {
	if r == nil || r.Body == nil {
		return nil
	}
	return r.Body.Aggregations
}

// Hit is one search result.
type Hit struct {
	ID     string  `json:"_id,omitempty"`
	Score  float64 `json:"_score,omitempty"`
	Source *Source `json:"_source,omitempty"`
	Fields *Fields `json:"fields,omitempty"`
}

type Source struct {
	Record   *Record   `json:"record,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type Metadata struct {
	IngestTime string `json:"ingestTime,omitempty"`
}

// Fields carries computed values the search index attaches to a hit.
type Fields struct {
	TotalDigitalObjects Count `json:"totalDigitalObjects,omitempty"`
}

// Record returns the descriptive record of the hit, never nil.
func (h *Hit) Record() *Record {
	if h == nil || h.Source == nil || h.Source.Record == nil {
		return &Record{}
	}
	return h.Source.Record
}

// IngestTime returns the raw ingest timestamp, or "".
func (h *Hit) IngestTime() string {
	if h == nil || h.Source == nil || h.Source.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(h.Source.Metadata.IngestTime)
}

// AggregateDigitalObjects returns the index-computed digital object count.
// ok is false when the field is absent or empty.
func (h *Hit) AggregateDigitalObjects() (n int, ok bool) {
	if h == nil || h.Fields == nil {
		return 0, false
	}
	return h.Fields.TotalDigitalObjects.Value()
}

type Record struct {
	NaID                  ID                     `json:"naId,omitempty"`
	Title                 string                 `json:"title,omitempty"`
	OtherTitles           []string               `json:"otherTitles,omitempty"`
	LevelOfDescription    string                 `json:"levelOfDescription,omitempty"`
	RecordGroupNumber     ID                     `json:"recordGroupNumber,omitempty"`
	LocalIdentifier       string                 `json:"localIdentifier,omitempty"`
	Ancestors             []Ancestor             `json:"ancestors,omitempty"`
	CoverageStartDate     *Date                  `json:"coverageStartDate,omitempty"`
	CoverageEndDate       *Date                  `json:"coverageEndDate,omitempty"`
	GeneralRecordsTypes   []string               `json:"generalRecordsTypes,omitempty"`
	PhysicalOccurrences   []PhysicalOccurrence   `json:"physicalOccurrences,omitempty"`
	DigitalObjects        []DigitalObject        `json:"digitalObjects,omitempty"`
	ScopeAndContentNote   string                 `json:"scopeAndContentNote,omitempty"`
	AccessRestriction     *Restriction           `json:"accessRestriction,omitempty"`
	UseRestriction        *Restriction           `json:"useRestriction,omitempty"`
	MicroformPublications []MicroformPublication `json:"microformPublications,omitempty"`
}

type Ancestor struct {
	NaID               ID        `json:"naId,omitempty"`
	Title              string    `json:"title,omitempty"`
	LevelOfDescription string    `json:"levelOfDescription,omitempty"`
	RecordGroupNumber  ID        `json:"recordGroupNumber,omitempty"`
	Distance           int       `json:"distance,omitempty"`
	Creators           []Creator `json:"creators,omitempty"`
}

type Creator struct {
	NaID          ID     `json:"naId,omitempty"`
	Heading       string `json:"heading,omitempty"`
	CreatorType   string `json:"creatorType,omitempty"`
	AuthorityType string `json:"authorityType,omitempty"`
}

// Date is a partially known calendar date.
type Date struct {
	LogicalDate string `json:"logicalDate,omitempty"`
	Year        int    `json:"year,omitempty"`
	Month       int    `json:"month,omitempty"`
	Day         int    `json:"day,omitempty"`
}

// String returns the logical date, or whatever precision the year/month/day
// parts allow, or "".
func (d *Date) String() string {
	if d == nil {
		return ""
	}
	if s := strings.TrimSpace(d.LogicalDate); s != "" {
		return s
	}
	switch {
	case d.Year <= 0:
		return ""
	case d.Month > 0 && d.Day > 0:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case d.Month > 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

type PhysicalOccurrence struct {
	CopyStatus     string          `json:"copyStatus,omitempty"`
	ReferenceUnits []ReferenceUnit `json:"referenceUnits,omitempty"`
}

type ReferenceUnit struct {
	Name     string `json:"name,omitempty"`
	MailCode string `json:"mailCode,omitempty"`
	Email    string `json:"email,omitempty"`
}

type DigitalObject struct {
	ObjectID          ID     `json:"objectId,omitempty"`
	ObjectFilename    string `json:"objectFilename,omitempty"`
	ObjectDescription string `json:"objectDescription,omitempty"`
	ObjectType        string `json:"objectType,omitempty"`
	ObjectURL         string `json:"objectUrl,omitempty"`
	ObjectFileSize    int64  `json:"objectFileSize,omitempty"`
}

type Restriction struct {
	Status                  string   `json:"status,omitempty"`
	Note                    string   `json:"note,omitempty"`
	SpecificUseRestrictions []string `json:"specificUseRestrictions,omitempty"`
}

type MicroformPublication struct {
	Identifier string `json:"identifier,omitempty"`
	Title      string `json:"title,omitempty"`
	Note       string `json:"note,omitempty"`
}

// ID is an identifier the API sends either as a JSON number or a string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Count is a number the search index may wrap in an array ([3]) or send as
// a string. The zero value means absent.
type Count struct {
	n   int
	set bool
}

// NewCount returns a present Count holding n.
func NewCount(n int) Count { return Count{n: n, set: true} }

// Value reports the count and whether one was supplied.
func (c Count) Value() (int, bool) { return c.n, c.set }

func (c *Count) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			*c = Count{}
			return nil
		}
		v = arr[0]
	}
	switch value := v.(type) {
	case float64:
		*c = NewCount(int(value))
	case string:
		value = strings.TrimSpace(value)
		if value == "" {
			*c = Count{}
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", value, err)
		}
		*c = NewCount(n)
	default:
		*c = Count{}
	}
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal([]int{c.n})
}
