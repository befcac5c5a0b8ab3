// Package web provides the JSON HTTP API over the coaching tables: controlled
// table queries, row mutations, CSV export and server-side grid sessions.
package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/coachgrid/internal/config"
	"github.com/JonMunkholm/coachgrid/internal/core"
	mw "github.com/JonMunkholm/coachgrid/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// TableService is the part of core.Service the handlers use.
type TableService interface {
	ListTablesByGroup() map[string][]core.TableInfo
	QueryTable(ctx context.Context, tableKey string, state core.TableState, action core.Action) (*core.TableQueryResult, error)
	Export(ctx context.Context, tableKey string, state core.TableState, w io.Writer) (int, error)

	CreateRow(ctx context.Context, tableKey string, values map[string]string) (string, error)
	UpdateCell(ctx context.Context, tableKey string, req core.UpdateCellRequest) error
	DeleteRows(ctx context.Context, tableKey string, ids []string) (int, error)

	OpenGrid(ctx context.Context, req core.OpenGridRequest) (*core.SessionView, error)
	GridView(id string) (*core.SessionView, error)
	ApplyGrid(id string, action core.Action) (*core.SessionView, error)
	RefreshGrid(ctx context.Context, id string) (*core.SessionView, error)
	DeleteSelected(ctx context.Context, id string) (*core.DeleteSelectedResult, error)
	CloseGrid(id string) error

	OpenSessions() int
	LoadStatus() core.LoadLimiterStatus
}

// Server is the HTTP server for the coaching table API.
type Server struct {
	service TableService
	cfg     *config.Config
	router  *chi.Mux
	limiter *rateLimiter
	server  *http.Server
}

// NewServer creates a Server. cfg supplies timeouts, rate limits and the
// security settings.
func NewServer(service TableService, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	if cfg.Rate.Enabled {
		s.limiter = newRateLimiter(cfg.Rate.RequestsPerMinute, cfg.Rate.Burst)
	}
	s.setupMiddleware()
	s.setupRoutes()

	sc := cfg.Server
	s.server = &http.Server{
		Addr:         sc.Addr(),
		Handler:      s.router,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(securityHeaders)
	if s.limiter != nil {
		s.router.Use(s.limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Get("/tables", s.handleListTables)
		r.Route("/tables/{tableKey}", func(r chi.Router) {
			r.Get("/", s.handleQueryTable)
			r.Get("/export", s.handleExportTable)
			r.Post("/rows", s.handleCreateRow)
			r.Put("/rows/{id}", s.handleUpdateCell)
			r.Post("/delete", s.handleDeleteRows)
		})

		r.Post("/grids", s.handleOpenGrid)
		r.Route("/grids/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGridView)
			r.Delete("/", s.handleCloseGrid)
			r.Post("/search", s.handleGridAction(core.OpSearch))
			r.Post("/sort", s.handleGridAction(core.OpSort))
			r.Post("/page", s.handleGridAction(core.OpPage))
			r.Post("/toggle", s.handleGridAction(core.OpToggle))
			r.Post("/toggle-all", s.handleGridAction(core.OpToggleAll))
			r.Post("/refresh", s.handleRefreshGrid)
			r.Post("/delete-selected", s.handleDeleteSelected)
		})
	})
}

// Start begins listening for HTTP requests.
// It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// RunLimiterCleanup forgets idle rate limiter clients every interval until
// ctx is cancelled. It is a no-op when rate limiting is disabled.
func (s *Server) RunLimiterCleanup(ctx context.Context, interval time.Duration) error {
	if s.limiter == nil {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.limiter.cleanup(); n > 0 {
				slog.Debug("rate limiter clients forgotten", "count", n)
			}
		}
	}
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
