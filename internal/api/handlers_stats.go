package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"briefs":      s.briefs.Len(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"operations":  s.stats.Snapshot(),
	})
}
