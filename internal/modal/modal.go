// Package modal tracks the single open detail overlay of a page.
package modal

import "sync"

// Slot holds at most one open modal, keyed by identifier.
type Slot struct {
	mu   sync.Mutex
	id   string
	open bool
}

// Open shows id, replacing whatever was open.
func (s *Slot) Open(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.open = true
}

// Close hides the open modal, whichever it is.
func (s *Slot) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
	s.open = false
}

// Active returns the open identifier.
func (s *Slot) Active() (id string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.open
}

// IsOpen reports whether id is the open modal.
func (s *Slot) IsOpen(id string) bool {
	active, ok := s.Active()
	return ok && active == id
}
