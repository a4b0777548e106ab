package state

import (
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// MachineFactory builds the per-session step machine. Injected so the store
// stays free of survey wiring.
type MachineFactory func() *fsm.FSM

// Store holds the in-progress sessions, keyed by user identity. Nothing is
// persisted: a session lives exactly as long as the survey it tracks.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	machines MachineFactory
	log      logrus.FieldLogger
}

func NewStore(machines MachineFactory, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		sessions: make(map[int64]*Session),
		machines: machines,
		log:      log,
	}
}

// Get returns the user's in-progress session, if any.
func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Begin creates a fresh session for the user, silently discarding any prior
// one. Restart without friction is the intended behavior.
func (s *Store) Begin(userID, chatID int64, userName, username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; ok {
		s.log.WithField("user_id", userID).Info("discarding prior session on restart")
	}

	sess := &Session{
		UserID:    userID,
		ChatID:    chatID,
		UserName:  userName,
		Username:  username,
		Machine:   s.machines(),
		Answers:   make(map[string]string),
		StartedAt: time.Now().UTC(),
	}
	s.sessions[userID] = sess
	return sess
}

// Drop destroys the user's session. Safe to call when none exists.
func (s *Store) Drop(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of in-progress sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
