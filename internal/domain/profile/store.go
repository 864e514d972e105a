package profile

import "sync/atomic"

// Store holds the active profile. Readers always see a whole profile.
type Store struct {
	p atomic.Pointer[Profile]
}

// NewStore creates a store with an initial profile.
func NewStore(initial *Profile) *Store {
	s := &Store{}
	s.p.Store(initial)
	return s
}

// Active returns the current profile.
func (s *Store) Active() *Profile {
	return s.p.Load()
}

// Swap replaces the active profile and returns the previous one.
func (s *Store) Swap(p *Profile) *Profile {
	return s.p.Swap(p)
}
