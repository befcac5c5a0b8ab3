package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/JonMunkholm/coachgrid/internal/grid"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// parseIntParam parses an integer query parameter with a default value.
// Negative and malformed values fall back to the default.
func parseIntParam(q url.Values, name string, defaultVal int) int {
	val := q.Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

// parseList splits a comma-separated parameter, dropping blanks.
func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseTableState reads controlled grid state from the query string:
// search, sort, dir, page, page_size and selected. A sort without a dir
// parameter is ascending; an empty or unknown dir leaves the column unsorted.
func parseTableState(q url.Values) core.TableState {
	state := core.TableState{
		Search:   q.Get("search"),
		Page:     parseIntParam(q, "page", 1),
		PageSize: parseIntParam(q, "page_size", 0),
		Selected: parseList(q.Get("selected")),
	}
	if key := strings.TrimSpace(q.Get("sort")); key != "" {
		dir := grid.SortAscending
		if q.Has("dir") {
			dir = grid.ParseSortDirection(q.Get("dir"))
		}
		state.Sort = grid.SortConfig{Key: key, Direction: dir}
	}
	return state
}

// parseAction reads the optional action from the query string: op plus q,
// key, n or id depending on the op.
func parseAction(q url.Values) (core.Action, error) {
	a := core.Action{Op: core.ActionOp(q.Get("op"))}
	switch a.Op {
	case core.OpNone, core.OpToggleAll:
	case core.OpSearch:
		a.Query = q.Get("q")
	case core.OpSort:
		a.Key = q.Get("key")
	case core.OpPage:
		n, err := strconv.Atoi(q.Get("n"))
		if err != nil {
			return core.Action{}, fmt.Errorf("%w: page needs a numeric n", core.ErrInvalidAction)
		}
		a.Page = n
	case core.OpToggle:
		a.ID = q.Get("id")
	default:
		return core.Action{}, fmt.Errorf("%w: %q", core.ErrInvalidAction, a.Op)
	}
	return a, nil
}

// decodeJSON decodes a bounded request body into v. An empty body leaves v
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return errBadRequest("invalid request body: " + err.Error())
	}
	return nil
}
