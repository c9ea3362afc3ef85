package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/mapper"
)

// SearchResult is one page of canonical records.
type SearchResult struct {
	Total        int                        `json:"total"`
	Records      []ead.Record               `json:"records"`
	Aggregations map[string]json.RawMessage `json:"aggregations,omitempty"`
}

// SearchService fetches catalog records and maps them to canonical form.
// It never touches the store.
type SearchService interface {
	Search(ctx context.Context, p catalog.SearchParams) (*SearchResult, error)
	Record(ctx context.Context, naID string) (*ead.Record, error)
	Children(ctx context.Context, parentID string, limit int) ([]ead.Record, error)
}

type searchService struct {
	client catalog.Client
	mapper *mapper.Mapper
	log    logging.Logger
}

func NewSearchService(client catalog.Client, m *mapper.Mapper, log logging.Logger) SearchService {
	return &searchService{client: client, mapper: m, log: log.With("component", "search")}
}

func (s *searchService) Search(ctx context.Context, p catalog.SearchParams) (*SearchResult, error) {
	resp, err := s.client.Search(ctx, p)
	if err != nil {
		s.log.Warn(ctx, "catalog search failed", "query", p.Query, "error", err)
		return nil, fmt.Errorf("search: %w", err)
	}
	return &SearchResult{
		Total:        resp.Total(),
		Records:      s.mapper.MapSearchResultsToRecords(resp.Hits()),
		Aggregations: resp.Aggregations(),
	}, nil
}

func (s *searchService) Record(ctx context.Context, naID string) (*ead.Record, error) {
	hit, err := s.client.GetRecord(ctx, naID)
	if err != nil {
		s.log.Warn(ctx, "catalog record lookup failed", "naId", naID, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}
	rec := s.mapper.MapSingleHitToRecord(hit)
	return &rec, nil
}

func (s *searchService) Children(ctx context.Context, parentID string, limit int) ([]ead.Record, error) {
	hits, err := s.client.GetChildren(ctx, parentID, limit)
	if err != nil {
		s.log.Warn(ctx, "catalog children lookup failed", "parentId", parentID, "error", err)
		return nil, fmt.Errorf("get children: %w", err)
	}
	return s.mapper.MapSearchResultsToRecords(hits), nil
}
