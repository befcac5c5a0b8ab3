package web

import (
	"net/http"

	"github.com/JonMunkholm/coachgrid/internal/core"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string                 `json:"status"`
	Sessions int                    `json:"sessions"`
	Loads    core.LoadLimiterStatus `json:"loads"`
}

// handleHealth reports open grid sessions and table load slots.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Sessions: s.service.OpenSessions(),
		Loads:    s.service.LoadStatus(),
	})
}

// handleListTables returns all tables organized by group.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListTablesByGroup())
}
