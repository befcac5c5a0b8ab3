package web

import (
	"net/http"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/go-chi/chi/v5"
)

// handleCreateRow inserts a row from a JSON object of column values.
func (s *Server) handleCreateRow(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(w, r, &values, false); err != nil {
		respondError(w, r, err)
		return
	}
	if len(values) == 0 {
		respondError(w, r, errBadRequest("no values provided"))
		return
	}

	id, err := s.service.CreateRow(withRequestMetadata(r), chi.URLParam(r, "tableKey"), values)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleUpdateCell writes one cell of the row named in the path.
func (s *Server) handleUpdateCell(w http.ResponseWriter, r *http.Request) {
	var req core.UpdateCellRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Column == "" {
		respondError(w, r, errBadRequest("missing column"))
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := s.service.UpdateCell(withRequestMetadata(r), chi.URLParam(r, "tableKey"), req); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteRowsRequest lists the ids to delete.
type DeleteRowsRequest struct {
	IDs []string `json:"ids"`
}

// handleDeleteRows deletes rows by id.
func (s *Server) handleDeleteRows(w http.ResponseWriter, r *http.Request) {
	var req DeleteRowsRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		respondError(w, r, err)
		return
	}
	if len(req.IDs) == 0 {
		respondError(w, r, errBadRequest("no rows specified"))
		return
	}

	deleted, err := s.service.DeleteRows(withRequestMetadata(r), chi.URLParam(r, "tableKey"), req.IDs)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
