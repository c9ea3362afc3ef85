package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

func (s *Server) listBookmarks(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Bookmarks.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) createBookmark(w http.ResponseWriter, r *http.Request) {
	var b models.Bookmark
	if err := decode(r, &b); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.svc.Bookmarks.Create(r.Context(), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, out)
}

func (s *Server) getBookmark(w http.ResponseWriter, r *http.Request) {
	b, err := s.svc.Bookmarks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, b)
}

func (s *Server) updateBookmark(w http.ResponseWriter, r *http.Request) {
	var p models.BookmarkPatch
	if err := decode(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.svc.Bookmarks.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, b)
}

func (s *Server) deleteBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Bookmarks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) bookmarkTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.Bookmarks.Tags(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, tags)
}
