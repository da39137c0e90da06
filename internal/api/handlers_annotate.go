package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dgallion1/citeshield/internal/chunker"
)

// handleAnnotate returns the line-numbered rendering of a text/plain body.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	defer s.stats.Time("annotate")()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, chunker.Annotate(string(data)))
}

type chunkRequest struct {
	Text     string `json:"text"`
	MaxLines *int   `json:"max_lines"`
	Overlap  *int   `json:"overlap"`
}

// handleChunk splits raw text without registering a brief.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	defer s.stats.Time("chunk")()

	var req chunkRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}

	cfg := s.cfg.ChunkConfig()
	if req.MaxLines != nil {
		cfg.MaxLines = *req.MaxLines
	}
	if req.Overlap != nil {
		cfg.Overlap = *req.Overlap
	}

	chunks, err := chunker.ChunkText(req.Text, cfg)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if chunks == nil {
		chunks = []chunker.Chunk{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"max_lines": cfg.MaxLines,
		"overlap":   cfg.Overlap,
		"chunks":    chunks,
	})
}
