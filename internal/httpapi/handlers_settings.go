package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
	"github.com/dmitrijs2005/archivekeeper/internal/legacy"
)

func (s *Server) allSettings(w http.ResponseWriter, r *http.Request) {
	all, err := s.svc.Settings.All(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, all)
}

func (s *Server) getSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	v, ok, err := s.svc.Settings.Get(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, fmt.Errorf("setting %s: %w", key, common.ErrorNotFound))
		return
	}
	s.writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) saveSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]json.RawMessage
	if err := decode(r, &values); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Settings.Save(r.Context(), values); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.allSettings(w, r)
}

// migrateLegacy runs the legacy migration on arrays posted by the host,
// which owns the legacy storage.
func (s *Server) migrateLegacy(w http.ResponseWriter, r *http.Request) {
	if s.migrator == nil {
		s.writeError(w, r, fmt.Errorf("%w: legacy migration is not available", common.ErrorValidation))
		return
	}
	var data legacy.Data
	if err := decode(r, &data); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.migrator.Migrate(r.Context(), &data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}
