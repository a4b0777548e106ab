package state

import (
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// Session is one user's in-progress survey: the current step (held by the
// machine), the answers collected so far and the module selection set.
// Answers only ever gain a key when the corresponding step is passed.
type Session struct {
	UserID   int64
	ChatID   int64
	UserName string
	Username string

	Machine *fsm.FSM

	Answers map[string]string
	Modules []string

	LastMessageID int
	StartedAt     time.Time

	// Mu serializes update processing for this user when the hosting
	// endpoint admits concurrent requests.
	Mu sync.Mutex
}

// ToggleModule flips membership of code in the selection set, keeping the
// order of first selection. It reports whether the code is selected after
// the toggle.
func (s *Session) ToggleModule(code string) bool {
	for i, c := range s.Modules {
		if c == code {
			s.Modules = append(s.Modules[:i], s.Modules[i+1:]...)
			return false
		}
	}
	s.Modules = append(s.Modules, code)
	return true
}

// HasModule reports membership of code in the selection set.
func (s *Session) HasModule(code string) bool {
	for _, c := range s.Modules {
		if c == code {
			return true
		}
	}
	return false
}
