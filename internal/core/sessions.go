package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/coachgrid/internal/grid"
	"github.com/google/uuid"
)

// GridSession is a grid that owns its own search, sort, page and selection,
// kept on the server between requests.
type GridSession struct {
	ID       string
	TableKey string

	mu       sync.Mutex
	def      TableDefinition
	grid     *grid.Grid[grid.Map]
	lastUsed time.Time
}

// SessionView is a session's id plus its current view.
type SessionView struct {
	SessionID string              `json:"session_id"`
	Table     TableInfo           `json:"table"`
	View      grid.View[grid.Map] `json:"view"`
}

func (gs *GridSession) view() *SessionView {
	return &SessionView{SessionID: gs.ID, Table: gs.def.Info, View: gs.grid.View()}
}

// SessionStore holds open grid sessions and evicts idle ones.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*GridSession
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl without
// use. At most max sessions are open at once.
func NewSessionStore(ttl time.Duration, max int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*GridSession),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// add registers gs, failing with ErrTooManySessions when full.
func (st *SessionStore) add(gs *GridSession) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.max {
		return ErrTooManySessions
	}
	gs.lastUsed = st.now()
	st.sessions[gs.ID] = gs
	return nil
}

// get returns the session and marks it used.
func (st *SessionStore) get(id string) (*GridSession, error) {
	st.mu.RLock()
	gs, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	gs.mu.Lock()
	gs.lastUsed = st.now()
	gs.mu.Unlock()
	return gs, nil
}

// Remove closes a session. Returns false if it did not exist.
func (st *SessionStore) Remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of open sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (st *SessionStore) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, gs := range st.sessions {
		gs.mu.Lock()
		idle := gs.lastUsed.Before(cutoff)
		gs.mu.Unlock()
		if idle {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// OpenGridRequest configures a new grid session.
type OpenGridRequest struct {
	Table    string          `json:"table"`
	PageSize int             `json:"page_size,omitempty"`
	Search   string          `json:"search,omitempty"`
	Sort     grid.SortConfig `json:"sort,omitempty"`
}

// OpenGrid loads a table into a new uncontrolled grid session.
func (s *Service) OpenGrid(ctx context.Context, req OpenGridRequest) (*SessionView, error) {
	def, err := Lookup(req.Table)
	if err != nil {
		return nil, err
	}
	rows, err := s.loadRows(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("open grid %s: %w", req.Table, err)
	}

	id := uuid.NewString()
	logger := s.opts.Logger.With("table", def.Info.Key, "session", id)

	g := s.newGrid(def, grid.Options[grid.Map]{
		PageSize: s.pageSize(req.PageSize),
		Logger:   logger,
		Selection: grid.Binding[[]string]{OnChange: func(ids []string) {
			logger.Debug("selection changed", "selected", len(ids))
		}},
	})
	g.SetRows(rows)
	if req.Search != "" {
		g.SetSearch(req.Search)
	}
	switch {
	case req.Sort.Active():
		g.SetSort(req.Sort)
	case def.DefaultSort.Active():
		g.SetSort(def.DefaultSort)
	}

	gs := &GridSession{ID: id, TableKey: def.Info.Key, def: def, grid: g}
	if err := s.sessions.add(gs); err != nil {
		return nil, err
	}

	logger.Info("grid session opened", "rows", len(rows))
	return gs.view(), nil
}

// GridView returns a session's current view.
func (s *Service) GridView(id string) (*SessionView, error) {
	gs, err := s.sessions.get(id)
	if err != nil {
		return nil, err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.view(), nil
}

// ApplyGrid performs action on a session's grid, which keeps the result.
func (s *Service) ApplyGrid(id string, action Action) (*SessionView, error) {
	gs, err := s.sessions.get(id)
	if err != nil {
		return nil, err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := action.Apply(gs.grid); err != nil {
		return nil, err
	}
	return gs.view(), nil
}

// RefreshGrid reloads a session's rows. Search, sort, page and selection
// carry over; selected ids whose rows are gone stay selected.
func (s *Service) RefreshGrid(ctx context.Context, id string) (*SessionView, error) {
	gs, err := s.sessions.get(id)
	if err != nil {
		return nil, err
	}
	rows, err := s.loadRows(ctx, gs.def)
	if err != nil {
		return nil, fmt.Errorf("refresh grid %s: %w", id, err)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.grid.SetRows(rows)
	return gs.view(), nil
}

// DeleteSelectedResult reports a bulk delete from a grid session.
type DeleteSelectedResult struct {
	Deleted int `json:"deleted"`
	*SessionView
}

// DeleteSelected deletes every selected row of a session, reloads the rows
// and clears the selection.
func (s *Service) DeleteSelected(ctx context.Context, id string) (*DeleteSelectedResult, error) {
	gs, err := s.sessions.get(id)
	if err != nil {
		return nil, err
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()

	deleted, err := s.DeleteRows(ctx, gs.TableKey, gs.grid.Selected())
	if err != nil {
		return nil, err
	}
	rows, err := s.loadRows(ctx, gs.def)
	if err != nil {
		return nil, fmt.Errorf("reload after delete: %w", err)
	}
	gs.grid.SetRows(rows)
	gs.grid.ResetSelection(nil)

	return &DeleteSelectedResult{Deleted: deleted, SessionView: gs.view()}, nil
}

// CloseGrid discards a session.
func (s *Service) CloseGrid(id string) error {
	if !s.sessions.Remove(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.opts.Logger.Info("grid session closed", "session", id)
	return nil
}
