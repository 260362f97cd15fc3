package app

import (
	"context"
	"time"

	"ailearn-quiz-service/internal/domain"
)

// SessionRepository abstracts how live quiz sessions are tracked (in-memory,
// sharded, etc). One session is live per learner at a time.
type SessionRepository interface {
	GetOrCreate(userID string, create func() *QuizSession) *QuizSession
	Get(userID string) (*QuizSession, bool)
	Delete(userID string)
}

// CatalogRepository loads quiz and glossary content (from cache or backing
// store).
type CatalogRepository interface {
	Questions(ctx context.Context) ([]domain.QuizQuestion, error)
	Glossary(ctx context.Context) ([]domain.GlossaryTerm, error)
}

// QuizConfig tunes session behavior.
type QuizConfig struct {
	QuestionsPerQuiz int
	// AdvanceDelay defers the question transition so clients can show
	// per-question feedback. Purely a pacing affordance; zero advances
	// synchronously.
	AdvanceDelay time.Duration
}

// QuizService contains the quiz use cases: start a session, submit answers,
// restart, and tear down.
type QuizService struct {
	sessions SessionRepository
	catalog  CatalogRepository
	progress *ProgressService
	cfg      QuizConfig
}

func NewQuizService(sessions SessionRepository, catalog CatalogRepository, progress *ProgressService, cfg QuizConfig) *QuizService {
	return &QuizService{sessions: sessions, catalog: catalog, progress: progress, cfg: cfg}
}

// StartSession creates (or reuses) the learner's session and starts a fresh
// quiz in it. The prior selection, if any, is discarded; only the persisted
// answered-terms set carries over.
func (s *QuizService) StartSession(ctx context.Context, userID string) (*QuizSession, SessionSnapshot) {
	session := s.sessions.GetOrCreate(userID, func() *QuizSession {
		return NewQuizSession(userID, s.catalog, s.progress, s.cfg.QuestionsPerQuiz, s.cfg.AdvanceDelay)
	})
	return session, session.Start(ctx)
}

// SubmitAnswer routes an answer to the learner's live session.
func (s *QuizService) SubmitAnswer(_ context.Context, userID, questionID, selectedAnswer string) (AnswerFeedback, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return AnswerFeedback{}, domain.ErrSessionNotFound
	}
	return session.SubmitAnswer(questionID, selectedAnswer)
}

// Subscribe returns a channel of session snapshots for the learner's live
// session. The caller must invoke the cancel function.
func (s *QuizService) Subscribe(_ context.Context, userID string) (<-chan SessionSnapshot, func(), error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.Subscribe()
	return ch, cancel, nil
}

// EndSession closes the learner's session, cancelling any pending deferred
// advance, and drops it from the registry.
func (s *QuizService) EndSession(userID string) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(userID)
}
