package web

import (
	"net/http"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/go-chi/chi/v5"
)

// handleOpenGrid loads a table into a new server-side grid session.
func (s *Server) handleOpenGrid(w http.ResponseWriter, r *http.Request) {
	var req core.OpenGridRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Table == "" {
		respondError(w, r, errBadRequest("missing table"))
		return
	}

	sv, err := s.service.OpenGrid(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/grids/"+sv.SessionID)
	writeJSON(w, http.StatusCreated, sv)
}

// handleGridView returns the session's current view.
func (s *Server) handleGridView(w http.ResponseWriter, r *http.Request) {
	sv, err := s.service.GridView(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

// handleGridAction returns a handler applying op to a session. The body
// holds the op's argument: {"q"}, {"key"}, {"page"} or {"id"}.
func (s *Server) handleGridAction(op core.ActionOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var action core.Action
		if err := decodeJSON(w, r, &action, true); err != nil {
			respondError(w, r, err)
			return
		}
		action.Op = op

		sv, err := s.service.ApplyGrid(chi.URLParam(r, "sessionID"), action)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, sv)
	}
}

// handleRefreshGrid reloads the session's rows from the database.
func (s *Server) handleRefreshGrid(w http.ResponseWriter, r *http.Request) {
	sv, err := s.service.RefreshGrid(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

// handleDeleteSelected deletes the session's selected rows.
func (s *Server) handleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.DeleteSelected(withRequestMetadata(r), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleCloseGrid discards a session.
func (s *Server) handleCloseGrid(w http.ResponseWriter, r *http.Request) {
	if err := s.service.CloseGrid(chi.URLParam(r, "sessionID")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
