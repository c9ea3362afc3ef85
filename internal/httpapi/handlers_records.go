package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/services"
)

var errNoCatalog = fmt.Errorf("%w: catalog access is not configured", common.ErrorUpstream)

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", common.ErrorValidation, name)
	}
	return n, nil
}

// searchFailure is a failed search: the error next to an empty page, so
// callers can render the result list and the message together.
type searchFailure struct {
	errorBody
	Total   int          `json:"total"`
	Records []ead.Record `json:"records"`
}

func (s *Server) writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := s.failure(r, err)
	s.writeJSON(w, r, status, searchFailure{errorBody: body, Records: []ead.Record{}})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if s.svc.Search == nil {
		s.writeSearchError(w, r, errNoCatalog)
		return
	}
	q := r.URL.Query()
	page, err := queryInt(r, "page")
	if err != nil {
		s.writeSearchError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeSearchError(w, r, err)
		return
	}
	online, _ := strconv.ParseBool(q.Get("online"))

	res, err := s.svc.Search.Search(r.Context(), catalog.SearchParams{
		Query:           q.Get("q"),
		Page:            page,
		Limit:           limit,
		Level:           q.Get("level"),
		AvailableOnline: online,
	})
	if err != nil {
		s.writeSearchError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	if s.svc.Search == nil {
		s.writeError(w, r, errNoCatalog)
		return
	}
	rec, err := s.svc.Search.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) getChildren(w http.ResponseWriter, r *http.Request) {
	if s.svc.Search == nil {
		s.writeError(w, r, errNoCatalog)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recs, err := s.svc.Search.Children(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, recs)
}

type bookmarkRecordRequest struct {
	CategoryID string   `json:"categoryId"`
	Tags       []string `json:"tags,omitempty"`
	CustomName string   `json:"customName,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

// bookmarkRecord fetches a catalog record and saves a bookmark for it.
func (s *Server) bookmarkRecord(w http.ResponseWriter, r *http.Request) {
	if s.svc.Search == nil {
		s.writeError(w, r, errNoCatalog)
		return
	}
	var req bookmarkRecordRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.svc.Search.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	webURL, err := s.svc.Settings.GetString(r.Context(), services.SettingCatalogWebURL, "")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if webURL == "" {
		webURL = s.catalogWebURL
	}

	b := models.BookmarkFromRecord(*rec, req.CategoryID, webURL)
	if req.Tags != nil {
		b.Tags = req.Tags
	}
	b.CustomName = req.CustomName
	b.Note = req.Note

	out, err := s.svc.Bookmarks.Create(r.Context(), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, out)
}
