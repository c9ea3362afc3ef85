package mapper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/hierarchy"
	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestMapper() *Mapper {
	return New(timex.Fixed(fixedNow))
}

func loadHit(t *testing.T, name string) *catalog.Hit {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	var h catalog.Hit
	require.NoError(t, json.Unmarshal(b, &h))
	return &h
}

func parseHit(t *testing.T, s string) *catalog.Hit {
	t.Helper()
	var h catalog.Hit
	require.NoError(t, json.Unmarshal([]byte(s), &h))
	return &h
}

func TestMapSingleHitToRecord_FullSeries(t *testing.T) {
	got := newTestMapper().MapSingleHitToRecord(loadHit(t, "series_hit.json"))

	ingest := "2022-03-04T05:06:07Z"
	want := ead.Record{
		Control: ead.Control{
			RecordID: "305252",
			FileDesc: ead.FileDesc{
				Title:      "Japanese Surrender Documents",
				Publisher:  common.SourceInstitution,
				IngestDate: ingest,
				Note:       "Microform publication(s): M1234 Surrender Rolls; Supplement",
			},
			MaintenanceAgency: ead.MaintenanceAgency{
				Code: common.SourceInstitutionCode,
				Name: common.SourceInstitution,
			},
			MaintenanceHistory: []ead.Event{{Type: ead.EventCreated, DateTime: ingest, Agent: common.SourceInstitution}},
		},
		Description: ead.Description{
			Level:     hierarchy.LevelSeries,
			LocalType: "Textual Records, Photographs and other Graphic Materials",
			DscHead:   "File Units in this Series",
			DID: ead.DID{
				Title:       "Japanese Surrender Documents",
				UnitID:      "RG 238-JS",
				UnitDate:    &ead.UnitDate{Text: "1945-08-14 – 1945-09-02", Normal: "1945-08-14/1945-09-02"},
				Repository:  "National Archives at College Park - Textual Reference",
				Origination: "Office of the Chief of Counsel",
				Abstract:    "Instruments of surrender.",
			},
			DigitalObjects: []ead.DigitalObject{
				{
					ID: "55", Filename: "surrender-01.jpg", Type: "Image (JPG)",
					URL: "https://example.org/55.jpg", Size: 1024,
					Events: []ead.Event{{Type: ead.EventAvailable, DateTime: ingest}},
				},
				{
					Filename: "Page two", Type: "Image (JPG)",
					Events: []ead.Event{{Type: ead.EventAvailable, DateTime: ingest}},
				},
			},
			Restrictions: []ead.Restriction{
				{
					Kind: ead.RestrictionAccess, Head: "Access Restrictions",
					Statements: []ead.Statement{{Kind: ead.StatementStatus, Text: "Unrestricted"}},
				},
				{
					Kind: ead.RestrictionUse, Head: "Use Restrictions",
					Statements: []ead.Statement{
						{Kind: ead.StatementStatus, Text: "Restricted - Possibly"},
						{Kind: ead.StatementSpecific, Text: "Copyright; Trademark"},
						{Kind: ead.StatementNote, Text: "Some items may be copyrighted."},
					},
				},
			},
		},
		Path: []ead.PathEntry{
			{ID: "388", Level: hierarchy.LevelRecordGroup, Label: "Record Group 238: National Archives Collection of World War II War Crimes Records"},
			{ID: "7", Level: hierarchy.LevelCollection, Label: "Collection of Foreign Records"},
		},
		DigitalObjectCount: 7,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestMapSingleHitToRecord_ExampleScenario(t *testing.T) {
	hit := parseHit(t, `{"_source":{"record":{
		"naId":73088101,
		"title":"Surrender of Japan",
		"levelOfDescription":"item",
		"coverageEndDate":{"logicalDate":"1945-08-14"},
		"digitalObjects":[{"objectFilename":"a.jpg"}]
	}}}`)

	r := newTestMapper().MapSingleHitToRecord(hit)

	assert.Equal(t, "73088101", r.Control.RecordID)
	assert.Equal(t, 1, r.DigitalObjectCount)
	require.NotNil(t, r.Description.DID.UnitDate)
	assert.Equal(t, "1945-08-14", r.Description.DID.UnitDate.Text)
	assert.Equal(t, "/1945-08-14", r.Description.DID.UnitDate.Normal)
	assert.Equal(t, "73088101", r.Description.DID.UnitID)
}

func TestUnitDate(t *testing.T) {
	d := func(s string) *catalog.Date { return &catalog.Date{LogicalDate: s} }
	tests := []struct {
		name       string
		start, end *catalog.Date
		want       *ead.UnitDate
	}{
		{"both missing", nil, nil, nil},
		{"both blank", d(""), &catalog.Date{}, nil},
		{"start only", d("1941-12-07"), nil, &ead.UnitDate{Text: "1941-12-07", Normal: "1941-12-07/"}},
		{"end only", nil, d("1945"), &ead.UnitDate{Text: "1945", Normal: "/1945"}},
		{"equal", d("1945"), d("1945"), &ead.UnitDate{Text: "1945", Normal: "1945/1945"}},
		{"range", d("1941"), d("1945"), &ead.UnitDate{Text: "1941 – 1945", Normal: "1941/1945"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unitDate(tt.start, tt.end))
		})
	}
}

func TestMissingEverything(t *testing.T) {
	m := newTestMapper()

	for _, in := range []string{`{}`, `{"_source":{}}`, `{"_source":{"record":{}}}`, `{"fields":{}}`} {
		t.Run(in, func(t *testing.T) {
			r := m.MapSingleHitToRecord(parseHit(t, in))
			assert.Equal(t, "Untitled", r.Control.FileDesc.Title)
			assert.Equal(t, fixedNow.Format(time.RFC3339), r.Control.FileDesc.IngestDate)
			assert.Equal(t, hierarchy.LevelOther, r.Description.Level)
			assert.Nil(t, r.Description.DID.UnitDate)
			assert.Nil(t, r.Description.Restrictions)
			assert.Nil(t, r.Description.DigitalObjects)
			assert.Empty(t, r.Path)
			assert.Equal(t, 0, r.DigitalObjectCount)
			assert.Empty(t, r.Description.DID.Origination)
			assert.Empty(t, r.Description.DID.Repository)
		})
	}

	r := m.MapSingleHitToRecord(nil)
	assert.Equal(t, "Untitled", r.Control.FileDesc.Title)
}

func TestIngestFallbackUsesInjectedClock(t *testing.T) {
	hit := parseHit(t, `{"_source":{"record":{"naId":1}}}`)

	a := New(timex.Fixed(fixedNow)).MapSingleHitToRecord(hit)
	b := New(timex.Fixed(fixedNow.Add(time.Hour))).MapSingleHitToRecord(hit)

	assert.Equal(t, "2024-05-06T07:08:09Z", a.Control.FileDesc.IngestDate)
	assert.Equal(t, "2024-05-06T08:08:09Z", b.Control.FileDesc.IngestDate)
	assert.Equal(t, a.Control.FileDesc.IngestDate, a.Control.MaintenanceHistory[0].DateTime)
}

func TestMappingIsDeterministic(t *testing.T) {
	m := newTestMapper()
	a := m.MapSingleHitToRecord(loadHit(t, "series_hit.json"))
	b := m.MapSingleHitToRecord(loadHit(t, "series_hit.json"))
	assert.Empty(t, cmp.Diff(a, b))
}

func TestTitleFallsBackToOtherTitles(t *testing.T) {
	r := newTestMapper().MapSingleHitToRecord(parseHit(t,
		`{"_source":{"record":{"title":"  ","otherTitles":["", "Alt title"]}}}`))
	assert.Equal(t, "Alt title", r.Control.FileDesc.Title)
	assert.Equal(t, "Alt title", r.Description.DID.Title)
}

func TestOriginationRequiresMostRecentCreator(t *testing.T) {
	r := newTestMapper().MapSingleHitToRecord(parseHit(t, `{"_source":{"record":{"ancestors":[
		{"naId":1,"levelOfDescription":"recordGroup","creators":[
			{"heading":"Predecessor","creatorType":"Predecessor"}]}
	]}}}`))
	assert.Empty(t, r.Description.DID.Origination)
}

func TestDigitalObjectCount(t *testing.T) {
	m := newTestMapper()

	t.Run("counts objects without aggregate", func(t *testing.T) {
		r := m.MapSingleHitToRecord(parseHit(t,
			`{"_source":{"record":{"digitalObjects":[{},{},{}]}}}`))
		assert.Equal(t, 3, r.DigitalObjectCount)
		assert.Equal(t, len(r.Description.DigitalObjects), r.DigitalObjectCount)
	})

	t.Run("empty aggregate is ignored", func(t *testing.T) {
		r := m.MapSingleHitToRecord(parseHit(t,
			`{"_source":{"record":{"digitalObjects":[{}]}},"fields":{"totalDigitalObjects":[]}}`))
		assert.Equal(t, 1, r.DigitalObjectCount)
	})

	t.Run("aggregate wins and is not added", func(t *testing.T) {
		r := m.MapSingleHitToRecord(parseHit(t,
			`{"_source":{"record":{"digitalObjects":[{},{}]}},"fields":{"totalDigitalObjects":[10]}}`))
		assert.Equal(t, 10, r.DigitalObjectCount)
	})

	t.Run("zero aggregate is honoured", func(t *testing.T) {
		r := m.MapSingleHitToRecord(parseHit(t,
			`{"_source":{"record":{"digitalObjects":[{}]}},"fields":{"totalDigitalObjects":[0]}}`))
		assert.Equal(t, 0, r.DigitalObjectCount)
	})
}

func TestRestrictions(t *testing.T) {
	m := newTestMapper()

	t.Run("access note without status is dropped", func(t *testing.T) {
		r := m.MapSingleHitToRecord(parseHit(t,
			`{"_source":{"record":{"accessRestriction":{"note":"n"}}}}`))
		assert.Nil(t, r.Description.Restrictions)
	})

	t.Run("use specifics only", func(t *testing.T) {
		r := m.MapSingleHitToRecord(parseHit(t,
			`{"_source":{"record":{"useRestriction":{"specificUseRestrictions":[" ","Copyright"]}}}}`))
		require.Len(t, r.Description.Restrictions, 1)
		got := r.Description.Restrictions[0]
		assert.Equal(t, ead.RestrictionUse, got.Kind)
		assert.Equal(t, []ead.Statement{{Kind: ead.StatementSpecific, Text: "Copyright"}}, got.Statements)
	})

	t.Run("blank use fields yield nothing", func(t *testing.T) {
		r := m.MapSingleHitToRecord(parseHit(t,
			`{"_source":{"record":{"useRestriction":{"status":" ","specificUseRestrictions":[""],"note":""}}}}`))
		assert.Nil(t, r.Description.Restrictions)
	})
}

func TestAncestorPathInvariant(t *testing.T) {
	hit := parseHit(t, `{"_source":{"record":{
		"naId":50,
		"levelOfDescription":"fileUnit",
		"ancestors":[
			{"naId":3,"title":"Item-level oddity","levelOfDescription":"item"},
			{"naId":50,"title":"Self","levelOfDescription":"series"},
			{"naId":20,"title":"Dup","levelOfDescription":"File Unit"},
			{"naId":21,"title":"Dup 2","levelOfDescription":"FILEUNIT"},
			{"naId":10,"title":"Correspondence","levelOfDescription":"series"},
			{"naId":1,"title":"Navy","levelOfDescription":"recordGroup","recordGroupNumber":"24"}
		]
	}}}`)
	r := newTestMapper().MapSingleHitToRecord(hit)

	want := []ead.PathEntry{
		{ID: "1", Level: hierarchy.LevelRecordGroup, Label: "Record Group 24: Navy"},
		{ID: "10", Level: hierarchy.LevelSeries, Label: "Series: Correspondence"},
		{ID: "3", Level: hierarchy.LevelItem, Label: "Item-level oddity"},
	}
	assert.Equal(t, want, r.Path)

	for _, p := range r.Path {
		assert.NotEqual(t, r.Control.RecordID, p.ID)
		assert.NotEqual(t, r.Description.Level, p.Level)
	}
}

func TestPathLabelWithoutTitle(t *testing.T) {
	r := newTestMapper().MapSingleHitToRecord(parseHit(t, `{"_source":{"record":{
		"levelOfDescription":"item",
		"ancestors":[{"naId":2,"levelOfDescription":"fileUnit"},{"naId":1,"levelOfDescription":"recordGroup"}]
	}}}`))
	require.Len(t, r.Path, 2)
	assert.Equal(t, "Record Group", r.Path[0].Label)
	assert.Equal(t, "File Unit", r.Path[1].Label)
}

func TestMapSearchResultsToRecords(t *testing.T) {
	var resp catalog.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"body":{"hits":{"hits":[
		{"_source":{"record":{"naId":1,"title":"a"}}},
		{"_source":{"record":{"naId":2,"title":"b"}}}
	]}}}`), &resp))

	got := newTestMapper().MapSearchResultsToRecords(resp.Hits())
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Control.RecordID)
	assert.Equal(t, "b", got[1].Control.FileDesc.Title)

	assert.Empty(t, newTestMapper().MapSearchResultsToRecords(nil))
}

func TestDscHead(t *testing.T) {
	assert.Equal(t, "Series in this Record Group", dscHead(hierarchy.LevelRecordGroup))
	assert.Equal(t, "Series in this Collection", dscHead(hierarchy.LevelCollection))
	assert.Equal(t, "Items in this File Unit", dscHead(hierarchy.LevelFileUnit))
	assert.Empty(t, dscHead(hierarchy.LevelItem))
}
