package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/citeshield/internal/pipeline"
)

// handleListBriefs lists every registered brief.
func (s *Server) handleListBriefs(w http.ResponseWriter, r *http.Request) {
	briefs := s.briefs.List()
	infos := make([]pipeline.BriefInfo, 0, len(briefs))
	for _, b := range briefs {
		infos = append(infos, b.Info())
	}
	writeJSON(w, http.StatusOK, map[string]any{"briefs": infos})
}

// handleGetBrief returns a brief's overview and outline.
func (s *Server) handleGetBrief(w http.ResponseWriter, r *http.Request) {
	brief := s.lookupBrief(w, r)
	if brief == nil {
		return
	}
	writeJSON(w, http.StatusOK, brief.Info())
}

// handleDeleteBrief drops a brief from memory.
func (s *Server) handleDeleteBrief(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.briefs.Delete(docID) {
		jsonError(w, "brief not found", http.StatusNotFound)
		return
	}
	s.log.Info("brief deleted", "doc_id", docID)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}

// lookupBrief resolves {docID} or writes a 404.
func (s *Server) lookupBrief(w http.ResponseWriter, r *http.Request) *pipeline.Brief {
	docID := chi.URLParam(r, "docID")
	brief := s.briefs.Get(docID)
	if brief == nil {
		jsonError(w, "brief not found", http.StatusNotFound)
	}
	return brief
}
