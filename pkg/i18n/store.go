package i18n

import "sync"

// Store keeps per-user locale preferences. The preference outlives any
// survey session and is only changed by an explicit locale selection.
type Store struct {
	mu       sync.Mutex
	prefs    map[int64]string
	fallback string
}

// NewStore creates an empty preference store with the given fallback locale.
func NewStore(fallback string) *Store {
	return &Store{
		prefs:    make(map[int64]string),
		fallback: fallback,
	}
}

// Resolve returns the user's chosen locale, or the fallback.
func (s *Store) Resolve(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc, ok := s.prefs[userID]; ok {
		return loc
	}
	return s.fallback
}

// Set records the user's locale choice. Last write wins.
func (s *Store) Set(userID int64, locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = locale
}
