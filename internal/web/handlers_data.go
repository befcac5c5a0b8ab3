package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/coachgrid/internal/logging"
	"github.com/go-chi/chi/v5"
)

// handleQueryTable runs a controlled query. The client owns the grid state
// and sends it in the query string; the response carries the state to send
// next time alongside the rendered view.
func (s *Server) handleQueryTable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action, err := parseAction(q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := s.service.QueryTable(r.Context(), chi.URLParam(r, "tableKey"), parseTableState(q), action)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleExportTable streams the rows matching search and sort as CSV.
func (s *Server) handleExportTable(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")

	var buf bytes.Buffer
	n, err := s.service.Export(r.Context(), tableKey, parseTableState(r.URL.Query()), &buf)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tableKey+".csv"))
	w.Header().Set("X-Row-Count", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Error("csv export write error", "table", tableKey, "error", err)
	}
}
