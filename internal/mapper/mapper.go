// Package mapper converts raw catalog search hits into canonical archival
// records.
//
// Mapping never fails: the catalog omits fields freely and every missing
// value maps to an empty or absent one. The only input besides the hit is a
// clock, consulted when a hit carries no ingest time.
package mapper

import (
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/hierarchy"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

const (
	untitled         = "Untitled"
	mostRecentType   = "Most Recent"
	microformPrefix  = "Microform publication(s): "
	accessHead       = "Access Restrictions"
	useHead          = "Use Restrictions"
	dateRangeDivider = " – "
)

// Mapper converts catalog hits to ead.Record values.
type Mapper struct {
	clock timex.Clock
}

// New returns a Mapper. A nil clock means the system clock.
func New(clock timex.Clock) *Mapper {
	if clock == nil {
		clock = timex.SystemClock
	}
	return &Mapper{clock: clock}
}

// MapSearchResultsToRecords maps every hit, preserving order.
func (m *Mapper) MapSearchResultsToRecords(hits []catalog.Hit) []ead.Record {
	out := make([]ead.Record, 0, len(hits))
	for i := range hits {
		out = append(out, m.MapSingleHitToRecord(&hits[i]))
	}
	return out
}

// MapSingleHitToRecord maps one hit. A nil hit yields an untitled record.
func (m *Mapper) MapSingleHitToRecord(hit *catalog.Hit) ead.Record {
	rec := hit.Record()

	recordID := rec.NaID.String()
	if recordID == "" && hit != nil {
		recordID = strings.TrimSpace(hit.ID)
	}

	ingest := hit.IngestTime()
	if ingest == "" {
		ingest = m.clock.Now().UTC().Format(time.RFC3339)
	}

	level := hierarchy.Normalize(rec.LevelOfDescription)
	title := resolveTitle(rec)

	return ead.Record{
		Control: ead.Control{
			RecordID: recordID,
			FileDesc: ead.FileDesc{
				Title:      title,
				Publisher:  common.SourceInstitution,
				IngestDate: ingest,
				Note:       microformNote(rec.MicroformPublications),
			},
			MaintenanceAgency: ead.MaintenanceAgency{
				Code: common.SourceInstitutionCode,
				Name: common.SourceInstitution,
			},
			MaintenanceHistory: []ead.Event{{
				Type:     ead.EventCreated,
				DateTime: ingest,
				Agent:    common.SourceInstitution,
			}},
		},
		Description: ead.Description{
			Level:     level,
			LocalType: joinNonBlank(rec.GeneralRecordsTypes, ", "),
			DscHead:   dscHead(level),
			DID: ead.DID{
				Title:       title,
				UnitID:      unitID(rec, recordID),
				UnitDate:    unitDate(rec.CoverageStartDate, rec.CoverageEndDate),
				Repository:  repositoryName(rec.PhysicalOccurrences),
				Origination: origination(rec.Ancestors),
				Abstract:    strings.TrimSpace(rec.ScopeAndContentNote),
			},
			DigitalObjects: digitalObjects(rec.DigitalObjects, ingest),
			Restrictions:   restrictions(rec.AccessRestriction, rec.UseRestriction),
		},
		Path:               ancestorPath(rec, recordID),
		DigitalObjectCount: digitalObjectCount(hit, rec),
	}
}

func resolveTitle(rec *catalog.Record) string {
	if t := strings.TrimSpace(rec.Title); t != "" {
		return t
	}
	for _, t := range rec.OtherTitles {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return untitled
}

func unitID(rec *catalog.Record, recordID string) string {
	if id := strings.TrimSpace(rec.LocalIdentifier); id != "" {
		return id
	}
	return recordID
}

func microformNote(pubs []catalog.MicroformPublication) string {
	parts := make([]string, 0, len(pubs))
	for _, p := range pubs {
		if s := joinNonBlank([]string{p.Identifier, p.Title}, " "); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return microformPrefix + strings.Join(parts, "; ")
}

// dscHead names the components listed under a record of the given level.
func dscHead(level hierarchy.Level) string {
	switch level {
	case hierarchy.LevelRecordGroup, hierarchy.LevelCollection:
		return "Series in this " + level.Label()
	case hierarchy.LevelSeries:
		return "File Units in this Series"
	case hierarchy.LevelFileUnit:
		return "Items in this File Unit"
	default:
		return ""
	}
}

// unitDate formats a coverage range. The text form collapses missing or
// equal ends; the normal form is always start/end.
func unitDate(start, end *catalog.Date) *ead.UnitDate {
	s, e := start.String(), end.String()

	var text string
	switch {
	case s == "" && e == "":
		return nil
	case s == "":
		text = e
	case e == "" || s == e:
		text = s
	default:
		text = s + dateRangeDivider + e
	}
	return &ead.UnitDate{Text: text, Normal: s + "/" + e}
}

// repositoryName only looks at the first reference unit of the first
// physical occurrence.
func repositoryName(occ []catalog.PhysicalOccurrence) string {
	if len(occ) == 0 || len(occ[0].ReferenceUnits) == 0 {
		return ""
	}
	return strings.TrimSpace(occ[0].ReferenceUnits[0].Name)
}

func origination(ancestors []catalog.Ancestor) string {
	for _, a := range ancestors {
		for _, c := range a.Creators {
			if strings.EqualFold(strings.TrimSpace(c.CreatorType), mostRecentType) {
				return strings.TrimSpace(c.Heading)
			}
		}
	}
	return ""
}

func digitalObjects(objs []catalog.DigitalObject, ingest string) []ead.DigitalObject {
	if len(objs) == 0 {
		return nil
	}
	out := make([]ead.DigitalObject, 0, len(objs))
	for _, o := range objs {
		name := strings.TrimSpace(o.ObjectFilename)
		if name == "" {
			name = strings.TrimSpace(o.ObjectDescription)
		}
		out = append(out, ead.DigitalObject{
			ID:       o.ObjectID.String(),
			Filename: name,
			Type:     strings.TrimSpace(o.ObjectType),
			URL:      strings.TrimSpace(o.ObjectURL),
			Size:     o.ObjectFileSize,
			Events:   []ead.Event{{Type: ead.EventAvailable, DateTime: ingest}},
		})
	}
	return out
}

func restrictions(access, use *catalog.Restriction) []ead.Restriction {
	var out []ead.Restriction

	if access != nil {
		if status := strings.TrimSpace(access.Status); status != "" {
			out = append(out, ead.Restriction{
				Kind:       ead.RestrictionAccess,
				Head:       accessHead,
				Statements: []ead.Statement{{Kind: ead.StatementStatus, Text: status}},
			})
		}
	}

	if use != nil {
		var st []ead.Statement
		if status := strings.TrimSpace(use.Status); status != "" {
			st = append(st, ead.Statement{Kind: ead.StatementStatus, Text: status})
		}
		if specific := joinNonBlank(use.SpecificUseRestrictions, "; "); specific != "" {
			st = append(st, ead.Statement{Kind: ead.StatementSpecific, Text: specific})
		}
		if note := strings.TrimSpace(use.Note); note != "" {
			st = append(st, ead.Statement{Kind: ead.StatementNote, Text: note})
		}
		if len(st) > 0 {
			out = append(out, ead.Restriction{Kind: ead.RestrictionUse, Head: useHead, Statements: st})
		}
	}

	return out
}

// ancestorPath drops the record itself and every ancestor on the record's
// own level, then orders the rest root first.
func ancestorPath(rec *catalog.Record, recordID string) []ead.PathEntry {
	ownRaw := strings.TrimSpace(rec.LevelOfDescription)
	ownLevel := hierarchy.Normalize(ownRaw)

	type candidate struct {
		entry ead.PathEntry
		rank  int
	}
	var cands []candidate
	for _, a := range rec.Ancestors {
		id := a.NaID.String()
		if recordID != "" && id == recordID {
			continue
		}
		raw := strings.TrimSpace(a.LevelOfDescription)
		if ownRaw != "" && strings.EqualFold(raw, ownRaw) {
			continue
		}
		level := hierarchy.Normalize(raw)
		if level == ownLevel {
			continue
		}
		cands = append(cands, candidate{
			entry: ead.PathEntry{ID: id, Level: level, Label: pathLabel(a, level)},
			rank:  level.Rank(),
		})
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].rank < cands[j].rank })

	out := make([]ead.PathEntry, len(cands))
	for i, c := range cands {
		out[i] = c.entry
	}
	return out
}

func pathLabel(a catalog.Ancestor, level hierarchy.Level) string {
	title := strings.TrimSpace(a.Title)
	switch level {
	case hierarchy.LevelRecordGroup:
		prefix := level.Label()
		if n := a.RecordGroupNumber.String(); n != "" {
			prefix += " " + n
		}
		return withPrefix(prefix, title)
	case hierarchy.LevelSeries, hierarchy.LevelFileUnit:
		return withPrefix(level.Label(), title)
	default:
		return title
	}
}

func withPrefix(prefix, title string) string {
	if title == "" {
		return prefix
	}
	return prefix + ": " + title
}

func digitalObjectCount(hit *catalog.Hit, rec *catalog.Record) int {
	if n, ok := hit.AggregateDigitalObjects(); ok && n >= 0 {
		return n
	}
	return len(rec.DigitalObjects)
}

func joinNonBlank(items []string, sep string) string {
	parts := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
