package app

import (
	"context"
	"log"
	"sync"
	"time"

	"ailearn-quiz-service/internal/domain"
)

// SessionState enumerates the quiz session lifecycle:
// Loading -> {Active, Error}; Active -> {Active, Completed};
// Error -> Loading (retry); Completed -> Loading (new quiz).
type SessionState string

const (
	StateLoading   SessionState = "loading"
	StateActive    SessionState = "active"
	StateCompleted SessionState = "completed"
	StateError     SessionState = "error"
)

// QuizResult is the outcome of one completed session.
type QuizResult struct {
	Score             int      `json:"score"`
	TotalQuestions    int      `json:"totalQuestions"`
	QuestionsAnswered []string `json:"questionsAnswered"`
	Timestamp         int64    `json:"timestamp"`
}

// AnswerFeedback is returned synchronously for each accepted submission.
type AnswerFeedback struct {
	QuestionID    string `json:"questionId"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	GlossaryLink  string `json:"glossaryLink,omitempty"`
}

// SessionSnapshot is the broadcast view of a session. Question is nil unless
// the session is active; Result is nil unless it is completed.
type SessionSnapshot struct {
	State          SessionState
	Question       *domain.QuizQuestion
	QuestionIndex  int
	TotalQuestions int
	ErrorMessage   string
	Result         *QuizResult
}

// QuizSession sequences a fixed-size quiz for one learner: select questions
// avoiding already-answered terms, advance one question at a time with a
// deferred transition, and record the attempt on completion.
type QuizSession struct {
	userID   string
	catalog  CatalogRepository
	progress *ProgressService

	questionsPerQuiz int
	advanceDelay     time.Duration
	now              func() time.Time

	mu             sync.Mutex
	state          SessionState
	errMessage     string
	questions      []domain.QuizQuestion
	current        int
	correctCount   int
	pendingAdvance bool
	timer          *time.Timer
	generation     int
	result         *QuizResult
	subscribers    map[chan SessionSnapshot]struct{}
}

// NewQuizSession constructs a session in the Loading state; call Start to
// select questions and activate it.
func NewQuizSession(userID string, catalog CatalogRepository, progress *ProgressService, questionsPerQuiz int, advanceDelay time.Duration) *QuizSession {
	return NewQuizSessionWithClock(userID, catalog, progress, questionsPerQuiz, advanceDelay, time.Now)
}

// NewQuizSessionWithClock allows an injectable clock for deterministic
// attempt timestamps.
func NewQuizSessionWithClock(userID string, catalog CatalogRepository, progress *ProgressService, questionsPerQuiz int, advanceDelay time.Duration, now func() time.Time) *QuizSession {
	if questionsPerQuiz <= 0 {
		questionsPerQuiz = DefaultQuestionsPerQuiz
	}
	return &QuizSession{
		userID:           userID,
		catalog:          catalog,
		progress:         progress,
		questionsPerQuiz: questionsPerQuiz,
		advanceDelay:     advanceDelay,
		now:              now,
		state:            StateLoading,
		subscribers:      make(map[chan SessionSnapshot]struct{}),
	}
}

// DefaultQuestionsPerQuiz is the quiz length when none is configured.
const DefaultQuestionsPerQuiz = 3

// Start loads the question pool, excludes terms the learner has already
// answered, and activates the session. Pool-load failure or an empty
// selection leaves the session in the Error state with a display-ready
// message. Start is also the retry and new-quiz entry point: it cancels any
// pending advance and discards prior in-session state.
func (s *QuizSession) Start(ctx context.Context) SessionSnapshot {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	pool, err := s.catalog.Questions(ctx)
	if err != nil {
		return s.fail(err.Error())
	}
	answered := s.progress.GetProgress(ctx, s.userID).AnsweredTerms
	selected := SelectRandomQuestions(pool, s.questionsPerQuiz, answered)
	if len(selected) == 0 {
		return s.fail(domain.ErrNoQuestions.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateActive
	s.questions = selected
	s.current = 0
	return s.broadcastLocked()
}

func (s *QuizSession) resetLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.state = StateLoading
	s.errMessage = ""
	s.questions = nil
	s.current = 0
	s.correctCount = 0
	s.pendingAdvance = false
	s.result = nil
}

func (s *QuizSession) fail(message string) SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.errMessage = message
	return s.broadcastLocked()
}

// SubmitAnswer accepts an answer for the currently displayed question only.
// Submissions for any other question ID, or while an advance is pending, are
// rejected without touching session state. Advancement to the next question
// (or completion) is deferred by the configured delay; the scheduled
// transition belongs to this session and is cancelled on Close or restart.
func (s *QuizSession) SubmitAnswer(questionID, selectedAnswer string) (AnswerFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return AnswerFeedback{}, domain.ErrSessionNotActive
	}
	question := s.questions[s.current]
	if questionID != question.ID || s.pendingAdvance {
		log.Printf("ignoring stale answer for %s: got question %q, current is %q", s.userID, questionID, question.ID)
		return AnswerFeedback{}, domain.ErrStaleQuestion
	}

	correct := selectedAnswer == question.CorrectAnswer
	if correct {
		s.correctCount++
	}

	s.pendingAdvance = true
	if s.advanceDelay <= 0 {
		s.advanceLocked()
	} else {
		generation := s.generation
		s.timer = time.AfterFunc(s.advanceDelay, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			// A restart or Close while the timer was in flight invalidates it.
			if s.generation != generation || s.state != StateActive {
				return
			}
			s.advanceLocked()
		})
	}

	return AnswerFeedback{
		QuestionID:    question.ID,
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		GlossaryLink:  question.GlossaryLink,
	}, nil
}

// advanceLocked moves to the next question, or completes the quiz and hands
// the attempt to the progress service.
func (s *QuizSession) advanceLocked() {
	s.pendingAdvance = false
	s.timer = nil

	if s.current+1 < len(s.questions) {
		s.current++
		s.broadcastLocked()
		return
	}

	terms := make([]string, len(s.questions))
	for i, question := range s.questions {
		terms[i] = question.Term
	}
	result := QuizResult{
		Score:             s.correctCount,
		TotalQuestions:    len(s.questions),
		QuestionsAnswered: terms,
		Timestamp:         s.now().UnixMilli(),
	}
	s.state = StateCompleted
	s.result = &result

	s.progress.RecordQuizAttempt(context.Background(), s.userID, domain.QuizAttempt{
		Timestamp:         result.Timestamp,
		Score:             result.Score,
		TotalQuestions:    result.TotalQuestions,
		QuestionsAnswered: result.QuestionsAnswered,
	})
	s.broadcastLocked()
}

// Close tears the session down, cancelling any pending deferred advance so a
// scheduled transition never fires for a dead session.
func (s *QuizSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pendingAdvance = false
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// State returns the current lifecycle state.
func (s *QuizSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the final outcome once the session has completed.
func (s *QuizSession) Result() (QuizResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return QuizResult{}, false
	}
	return *s.result, true
}

// Snapshot returns the current broadcast view without subscribing.
func (s *QuizSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel receiving session snapshots, beginning with the
// current one. The caller must invoke the cancel function to avoid leaks.
func (s *QuizSession) Subscribe() (<-chan SessionSnapshot, func()) {
	ch := make(chan SessionSnapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *QuizSession) broadcastLocked() SessionSnapshot {
	snapshot := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// Drop the oldest pending snapshot so a slow consumer cannot
			// block state transitions.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
	return snapshot
}

func (s *QuizSession) snapshotLocked() SessionSnapshot {
	snapshot := SessionSnapshot{
		State:          s.state,
		QuestionIndex:  s.current,
		TotalQuestions: len(s.questions),
		ErrorMessage:   s.errMessage,
	}
	if s.state == StateActive {
		question := s.questions[s.current]
		snapshot.Question = &question
	}
	if s.result != nil {
		result := *s.result
		snapshot.Result = &result
	}
	return snapshot
}
