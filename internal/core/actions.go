package core

import (
	"fmt"

	"github.com/JonMunkholm/coachgrid/internal/grid"
)

// ActionOp names a grid interaction.
type ActionOp string

const (
	OpNone      ActionOp = ""
	OpSearch    ActionOp = "search"
	OpSort      ActionOp = "sort"
	OpPage      ActionOp = "page"
	OpToggle    ActionOp = "toggle"
	OpToggleAll ActionOp = "toggle_all"
)

// Action is one user interaction with a grid. Which fields apply depends
// on Op: Query for search, Key for sort, Page for page, ID for toggle.
type Action struct {
	Op    ActionOp `json:"op"`
	Query string   `json:"q,omitempty"`
	Key   string   `json:"key,omitempty"`
	Page  int      `json:"page,omitempty"`
	ID    string   `json:"id,omitempty"`
}

// Apply performs the action on g. OpNone does nothing.
func (a Action) Apply(g *grid.Grid[grid.Map]) error {
	switch a.Op {
	case OpNone:
	case OpSearch:
		g.SetSearch(a.Query)
	case OpSort:
		if a.Key == "" {
			return fmt.Errorf("%w: sort needs a column key", ErrInvalidAction)
		}
		g.ClickSort(a.Key)
	case OpPage:
		g.SetPage(a.Page)
	case OpToggle:
		if a.ID == "" {
			return fmt.Errorf("%w: toggle needs a row id", ErrInvalidAction)
		}
		g.ToggleRow(a.ID)
	case OpToggleAll:
		g.ToggleAllOnPage()
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, a.Op)
	}
	return nil
}
