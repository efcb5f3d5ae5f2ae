package alias

import "sync/atomic"

// Store holds the registry readers use. A reload builds a new registry and
// swaps it in, so readers never see a half-built one. The registry itself is
// not safe for concurrent mutation.
type Store struct {
	current atomic.Pointer[Registry]
}

// NewStore creates a store holding an empty registry.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(NewRegistry())
	return s
}

// Load returns the current registry.
func (s *Store) Load() *Registry {
	return s.current.Load()
}

// Swap installs r and returns the previous registry.
func (s *Store) Swap(r *Registry) *Registry {
	return s.current.Swap(r)
}

// Reload rebuilds the registry from the given sources and installs it.
func (s *Store) Reload(ledgerText, overrideText string) []error {
	r, errs := Rebuild(ledgerText, overrideText)
	s.Swap(r)
	return errs
}
