package grid

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDirection is the direction of a single-column sort.
type SortDirection int

const (
	// SortNone means unsorted.
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// String returns the wire form used in URLs and JSON: "", "asc" or "desc".
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d SortDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SortDirection) UnmarshalText(text []byte) error {
	*d = ParseSortDirection(string(text))
	return nil
}

// ParseSortDirection parses "asc"/"ascending" and "desc"/"descending",
// case-insensitively. Anything else is SortNone.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAscending
	case "desc", "descending":
		return SortDescending
	default:
		return SortNone
	}
}

// SortConfig selects the sort column and direction.
// The zero value is unsorted.
type SortConfig struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// Active reports whether the config actually orders rows. A config with an
// empty key or SortNone behaves exactly like no config.
func (c SortConfig) Active() bool {
	return c.Key != "" && c.Direction != SortNone
}

// Sort orders rows by cfg using the root locale. See SortLocale.
func Sort[R Record](rows []R, cfg SortConfig) []R {
	return SortLocale(rows, cfg, language.Und)
}

// SortLocale returns a new slice with rows ordered by cfg.Key.
//
// Missing values always sort last, in both directions. Two strings compare
// with the collation rules of tag, two numbers numerically, anything else by
// the collation of their stringified forms. Descending reverses only the
// non-missing comparison. The sort is stable, so re-sorting sorted output
// with the same config is a no-op. An inactive config returns rows unchanged.
func SortLocale[R Record](rows []R, cfg SortConfig, tag language.Tag) []R {
	if !cfg.Active() {
		return rows
	}

	// Collators keep internal buffers and are not safe to share.
	coll := collate.New(tag)

	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(x, y R) int {
		a, b := x.Field(cfg.Key), y.Field(cfg.Key)
		aNull, bNull := isNull(a), isNull(b)
		switch {
		case aNull && bNull:
			return 0
		case aNull:
			return 1
		case bNull:
			return -1
		}

		c := compareValues(coll, a, b)
		if cfg.Direction == SortDescending {
			c = -c
		}
		return c
	})
	return out
}

// compareValues compares two non-missing values.
func compareValues(coll *collate.Collator, a, b any) int {
	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return coll.CompareString(as, bs)
	}

	an, aNum := toNumber(a)
	bn, bNum := toNumber(b)
	if aNum && bNum {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	return coll.CompareString(Stringify(a), Stringify(b))
}

// NextSort is the header-click transition. Clicking the sorted column cycles
// SortNone -> SortAscending -> SortDescending -> SortNone; clicking any other
// column starts it at SortAscending.
func NextSort(current SortConfig, clicked string) SortConfig {
	if clicked == "" {
		return current
	}
	if current.Key != clicked {
		return SortConfig{Key: clicked, Direction: SortAscending}
	}
	switch current.Direction {
	case SortNone:
		return SortConfig{Key: clicked, Direction: SortAscending}
	case SortAscending:
		return SortConfig{Key: clicked, Direction: SortDescending}
	default:
		return SortConfig{Key: clicked, Direction: SortNone}
	}
}
