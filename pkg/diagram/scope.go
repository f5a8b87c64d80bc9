package diagram

// Scope records every name declared during one diagram build.
//
// Callers hold the scope explicitly and query it. Declaring a name twice is allowed (names are
// only unique among siblings); [Scope.Declare] reports whether the name was new.
type Scope struct {
	names []string
	seen  map[string]struct{}
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{seen: make(map[string]struct{})}
}

// Declare records name and reports whether it was not declared before.
func (s *Scope) Declare(name string) bool {
	if _, ok := s.seen[name]; ok {
		return false
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
	return true
}

// Declared reports whether name was declared.
func (s *Scope) Declared(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Names returns the declared names in first-declaration order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of distinct declared names.
func (s *Scope) Len() int { return len(s.names) }
