package grid

// Ownership says who is authoritative for a State's writes.
type Ownership int

const (
	// Owned states store writes internally.
	Owned Ownership = iota
	// Delegated states hand writes to the caller's OnChange and wait for the
	// caller to Supply the accepted value.
	Delegated
)

// String implements fmt.Stringer.
func (o Ownership) String() string {
	if o == Delegated {
		return "delegated"
	}
	return "owned"
}

// Binding is the caller's side of one piece of grid state. Value, when
// non-nil, is the externally supplied value. OnChange, when non-nil, makes
// the caller the owner of writes.
type Binding[T any] struct {
	Value    *T
	OnChange func(T)
}

// State resolves one field between caller-owned and internally owned
// storage. Ownership is fixed at construction.
type State[T any] struct {
	ownership   Ownership
	internal    T
	external    T
	hasExternal bool
	onChange    func(T)
}

// NewState builds a State from b, falling back to initial for the internal
// value.
func NewState[T any](b Binding[T], initial T) *State[T] {
	s := &State[T]{internal: initial, onChange: b.OnChange}
	if b.OnChange != nil {
		s.ownership = Delegated
	}
	if b.Value != nil {
		s.Supply(*b.Value)
	}
	return s
}

// Ownership reports how writes are routed.
func (s *State[T]) Ownership() Ownership {
	return s.ownership
}

// Get returns the effective value: the supplied external value if any,
// the internal value otherwise.
func (s *State[T]) Get() T {
	if s.hasExternal {
		return s.external
	}
	return s.internal
}

// Set requests a change. Delegated states call OnChange and leave storage
// alone; owned states store v.
func (s *State[T]) Set(v T) {
	if s.ownership == Delegated {
		s.onChange(v)
		return
	}
	s.internal = v
}

// Supply records the caller's current value, which takes precedence over
// internal storage until Withdraw is called.
func (s *State[T]) Supply(v T) {
	s.external = v
	s.hasExternal = true
}

// Withdraw drops the supplied value so Get falls back to internal storage.
func (s *State[T]) Withdraw() {
	var zero T
	s.external = zero
	s.hasExternal = false
}
