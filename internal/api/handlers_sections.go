package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/citeshield/internal/sections"
)

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	brief := s.lookupBrief(w, r)
	if brief == nil {
		return
	}
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	pageSize, ok := queryInt(w, r, "page_size")
	if !ok {
		return
	}

	done := s.stats.Time("list")
	rows, err := brief.Store.List(page, pageSize)
	done()
	if err != nil {
		writeSectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":   brief.ID,
		"page":     page,
		"total":    brief.Store.Len(),
		"sections": rows,
	})
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	brief := s.lookupBrief(w, r)
	if brief == nil {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "section index must be an integer", http.StatusBadRequest)
		return
	}

	done := s.stats.Time("get")
	chunk, err := brief.Store.Get(index)
	done()
	if err != nil {
		writeSectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chunk)
}

func (s *Server) handleSearchSections(w http.ResponseWriter, r *http.Request) {
	brief := s.lookupBrief(w, r)
	if brief == nil {
		return
	}
	maxResults, ok := queryInt(w, r, "max_results")
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")

	done := s.stats.Time("search")
	results, err := brief.Store.Search(query, maxResults)
	done()
	if err != nil {
		writeSectionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":  brief.ID,
		"query":   query,
		"results": results,
	})
}

// queryInt reads an optional integer query parameter; absent means zero.
func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		jsonError(w, fmt.Sprintf("%s must be an integer", key), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// writeSectionError maps section access errors onto HTTP statuses.
func writeSectionError(w http.ResponseWriter, err error) {
	var nf *sections.NotFoundError
	switch {
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":       err.Error(),
			"valid_range": []int{0, nf.Count},
		})
	case sections.IsValidation(err):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}
