package grid

import "slices"

// Selection tracks selected row identities across pages, searches and sorts.
//
// Every toggle that changes the set notifies OnChange exactly once with the
// full new set. Reset replaces the set without notifying; it is the path for
// a caller that owns the selection and pushes a new value in.
type Selection struct {
	enabled  bool
	ids      map[string]struct{}
	order    []string
	onChange func(ids []string)
}

// NewSelection returns a tracker seeded with initial. A disabled tracker
// ignores every toggle.
func NewSelection(enabled bool, initial []string, onChange func(ids []string)) *Selection {
	s := &Selection{enabled: enabled, onChange: onChange}
	s.Reset(initial)
	return s
}

// Enabled reports whether toggles have any effect.
func (s *Selection) Enabled() bool {
	return s.enabled
}

// Reset replaces the selection with ids.
func (s *Selection) Reset(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	s.order = s.order[:0]
	for _, id := range ids {
		s.add(id)
	}
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.order)
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	return slices.Clone(s.order)
}

// ToggleRow selects id if it is not selected and deselects it otherwise.
func (s *Selection) ToggleRow(id string) {
	if !s.enabled {
		return
	}
	if s.Contains(id) {
		s.remove(id)
	} else {
		s.add(id)
	}
	s.notify()
}

// ToggleAll deselects every id in pageIDs when all of them are selected,
// and selects all of them otherwise, in one transition.
func (s *Selection) ToggleAll(pageIDs []string) {
	if !s.enabled || len(pageIDs) == 0 {
		return
	}
	if s.AllSelected(pageIDs) {
		for _, id := range pageIDs {
			s.remove(id)
		}
	} else {
		for _, id := range pageIDs {
			s.add(id)
		}
	}
	s.notify()
}

// AllSelected reports whether pageIDs is non-empty and fully selected.
func (s *Selection) AllSelected(pageIDs []string) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// AnySelected reports whether at least one id in pageIDs is selected.
func (s *Selection) AnySelected(pageIDs []string) bool {
	for _, id := range pageIDs {
		if s.Contains(id) {
			return true
		}
	}
	return false
}

func (s *Selection) add(id string) {
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) remove(id string) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange(s.IDs())
	}
}
