package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"golang.org/x/text/language"
)

// Options configure a Service. Zero values fall back to the defaults below.
type Options struct {
	DefaultPageSize int           // page size when a request names none (default 10)
	MaxPageSize     int           // cap on requested page sizes (default 200)
	Locale          language.Tag  // collation for sorted text (default und)
	SessionTTL      time.Duration // idle lifetime of grid sessions (default 30m)
	MaxSessions     int           // open session cap (default 1000)
	MaxLoads        int           // concurrent full-table loads (default 8)
	LoadWait        time.Duration // wait for a load slot (default 10s)
	Logger          *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = grid.DefaultPageSize
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 200
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 30 * time.Minute
	}
	if o.MaxSessions <= 0 {
		o.MaxSessions = 1000
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Service provides table queries, mutations and grid sessions over the
// coaching tables.
type Service struct {
	db       DBTX
	opts     Options
	sessions *SessionStore
	loads    *LoadLimiter

	// loadRows fetches a table's rows; replaced in tests.
	loadRows func(ctx context.Context, def TableDefinition) ([]grid.Map, error)
}

// NewService creates a Service backed by db, usually a *pgxpool.Pool.
func NewService(db DBTX, opts Options) *Service {
	opts = opts.withDefaults()
	s := &Service{
		db:       db,
		opts:     opts,
		sessions: NewSessionStore(opts.SessionTTL, opts.MaxSessions),
		loads:    NewLoadLimiter(opts.MaxLoads, opts.LoadWait),
	}
	s.loadRows = s.loads.limited(s.queryRows)
	return s
}

// Sessions returns the grid session store.
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// OpenSessions returns the number of open grid sessions.
func (s *Service) OpenSessions() int {
	return s.sessions.Len()
}

// LoadStatus reports the table load limiter.
func (s *Service) LoadStatus() LoadLimiterStatus {
	return s.loads.Status()
}

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	defs := All()
	infos := make([]TableInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListTablesByGroup returns tables organized by group.
func (s *Service) ListTablesByGroup() map[string][]TableInfo {
	result := make(map[string][]TableInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// EnsureSchema runs the CREATE statements of every registered table.
func (s *Service) EnsureSchema(ctx context.Context) error {
	for _, def := range All() {
		for _, stmt := range def.Schema {
			if _, err := s.db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema %s: %w", def.Info.Key, err)
			}
		}
		s.opts.Logger.Info("schema ready", "table", def.Info.Key)
	}
	return nil
}

// pageSize clamps a requested page size to the configured bounds.
// Zero or negative requests get the default.
func (s *Service) pageSize(requested int) int {
	switch {
	case requested <= 0:
		return s.opts.DefaultPageSize
	case requested > s.opts.MaxPageSize:
		return s.opts.MaxPageSize
	default:
		return requested
	}
}

// newGrid builds a grid for def with the service's locale and logger.
func (s *Service) newGrid(def TableDefinition, opts grid.Options[grid.Map]) *grid.Grid[grid.Map] {
	opts.Columns = def.GridColumns()
	opts.Identity = def.Identity()
	opts.Selectable = true
	opts.Locale = s.opts.Locale
	if opts.Logger == nil {
		opts.Logger = s.opts.Logger.With("table", def.Info.Key)
	}
	return grid.New(opts)
}
