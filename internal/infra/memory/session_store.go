package memory

import (
	"sync"

	"ailearn-quiz-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository,
// keyed by learner.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.QuizSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.QuizSession),
	}
}

func (s *SessionStore) GetOrCreate(userID string, create func() *app.QuizSession) *app.QuizSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userID]; ok {
		return session
	}
	session := create()
	s.sessions[userID] = session
	return session
}

func (s *SessionStore) Get(userID string) (*app.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[userID]
	return session, ok
}

func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
