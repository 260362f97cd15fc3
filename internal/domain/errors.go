package domain

import "errors"

var (
	// ErrKeyNotFound is returned by key-value stores when no record exists.
	ErrKeyNotFound = errors.New("key not found")
	// ErrQuotaExceeded signals that a write was rejected for storage-quota
	// exhaustion; the progress service reacts with trim-and-retry.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrInvalidAttempt is returned when a quiz attempt fails validation.
	ErrInvalidAttempt = errors.New("invalid quiz attempt")
	// ErrSessionNotFound is returned when a user has no active quiz session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionNotActive is returned for answers submitted outside an
	// active session (loading, completed, errored, or closed).
	ErrSessionNotActive = errors.New("quiz session not active")
	// ErrStaleQuestion is returned for answers that do not target the
	// currently displayed question (stale or duplicate UI events).
	ErrStaleQuestion = errors.New("answer does not match current question")
	// ErrNoQuestions carries the display-ready message shown when the
	// selection routine returns an empty quiz.
	ErrNoQuestions = errors.New("No questions available for quiz")
)
