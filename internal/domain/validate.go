package domain

import "fmt"

// ValidateQuizAttempt checks the structural shape of an attempt before it is
// appended to history. Invalid attempts are rejected by the progress service
// as logged no-ops.
func ValidateQuizAttempt(attempt QuizAttempt) error {
	if attempt.Timestamp <= 0 {
		return fmt.Errorf("%w: timestamp %d", ErrInvalidAttempt, attempt.Timestamp)
	}
	if attempt.TotalQuestions <= 0 {
		return fmt.Errorf("%w: totalQuestions %d", ErrInvalidAttempt, attempt.TotalQuestions)
	}
	if attempt.Score < 0 || attempt.Score > attempt.TotalQuestions {
		return fmt.Errorf("%w: score %d out of range 0..%d", ErrInvalidAttempt, attempt.Score, attempt.TotalQuestions)
	}
	if attempt.QuestionsAnswered == nil {
		return fmt.Errorf("%w: questionsAnswered missing", ErrInvalidAttempt)
	}
	for i, term := range attempt.QuestionsAnswered {
		if term == "" {
			return fmt.Errorf("%w: empty term at index %d", ErrInvalidAttempt, i)
		}
	}
	return nil
}

// ValidateStoredUserData checks a parsed record before any field is trusted.
// The progress service answers validation failures with defaults instead of
// propagating them.
func ValidateStoredUserData(data StoredUserData) error {
	if data.Version == "" {
		return fmt.Errorf("stored record missing version")
	}
	for i, attempt := range data.QuizHistory {
		if err := ValidateQuizAttempt(attempt); err != nil {
			return fmt.Errorf("quizHistory[%d]: %w", i, err)
		}
	}
	for i, term := range data.AnsweredTerms {
		if term == "" {
			return fmt.Errorf("answeredTerms[%d] is empty", i)
		}
	}
	return nil
}
