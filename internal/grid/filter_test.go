package grid

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilter_BlankTermReturnsInput(t *testing.T) {
	rows := people()
	for _, term := range []string{"", " ", "\t\n  "} {
		got := Filter(rows, term, peopleColumns(), nil)
		if diff := cmp.Diff(rows, got); diff != "" {
			t.Errorf("Filter(%q) mismatch (-want +got):\n%s", term, diff)
		}
	}
}

func TestFilter_ScenarioA(t *testing.T) {
	got := Filter(people(), "an", peopleColumns(), nil)
	want := []Map{{"id": 2, "name": "Ann"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_TrimsAndLowercasesTerm(t *testing.T) {
	got := Filter(people(), "  CAT ", peopleColumns(), nil)
	if diff := cmp.Diff([]string{"cat"}, field(got, "name")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_StringifiesNonStrings(t *testing.T) {
	rows := []Map{
		{"id": 1, "weight": 82.5, "active": true},
		{"id": 2, "weight": 70, "active": false},
	}
	cols := []Column[Map]{{Key: "weight"}, {Key: "active"}}

	if got := Filter(rows, "82.5", cols, nil); len(got) != 1 {
		t.Errorf("numeric match: got %d rows, want 1", len(got))
	}
	if got := Filter(rows, "fal", cols, nil); len(got) != 1 || got[0]["id"] != 2 {
		t.Errorf("bool match: got %v", got)
	}
}

func TestFilter_NilNeverMatches(t *testing.T) {
	rows := []Map{{"id": 1, "name": nil}, {"id": 2}}
	cols := []Column[Map]{{Key: "name"}}
	// fmt.Sprint(nil) is "<nil>"; a nil value must not match it.
	if got := Filter(rows, "nil", cols, nil); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestFilter_OnlyInspectsColumns(t *testing.T) {
	rows := []Map{{"id": 1, "name": "Zed", "notes": "ann"}}
	if got := Filter(rows, "ann", peopleColumns(), nil); len(got) != 0 {
		t.Errorf("expected hidden field to be ignored, got %v", got)
	}
}

func TestFilter_CustomPredicate(t *testing.T) {
	var seen []string
	pred := func(row Map, term string) bool {
		seen = append(seen, term)
		return strings.HasPrefix(strings.ToLower(Stringify(row["name"])), term)
	}

	got := Filter(people(), "  B ", peopleColumns(), pred)
	if diff := cmp.Diff([]string{"Bob"}, field(got, "name")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	for _, term := range seen {
		if term != "b" {
			t.Errorf("predicate received %q, want %q", term, "b")
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	rows := people()
	Filter(rows, "bob", peopleColumns(), nil)
	if diff := cmp.Diff(people(), rows); diff != "" {
		t.Errorf("input modified (-want +got):\n%s", diff)
	}
}

func TestFilter_ResultMatchesExactlyTheMatchingRows(t *testing.T) {
	rows := randomRows(7, 200)
	cols := []Column[Map]{{Key: "name"}, {Key: "score"}, {Key: "active"}}

	for _, term := range []string{"an", "B", "1", "tru", "zzz"} {
		got := Filter(rows, term, cols, nil)
		in := make(map[string]bool, len(got))
		for _, r := range got {
			in[r["id"].(string)] = true
			if !rowContains(r, cols, strings.ToLower(term)) {
				t.Errorf("term %q: row %v does not contain term", term, r)
			}
		}
		for _, r := range rows {
			if !in[r["id"].(string)] && rowContains(r, cols, strings.ToLower(term)) {
				t.Errorf("term %q: matching row %v was dropped", term, r)
			}
		}
	}
}
