package app

import (
	"math"
	"sort"

	"ailearn-quiz-service/internal/domain"
)

const (
	// TotalGlossaryTerms is the completion-percentage denominator. It is a
	// fixed constant mirroring the shipped glossary size, not derived from
	// the live catalog; it must be updated by hand if the glossary grows.
	TotalGlossaryTerms = 16

	// RecentAttemptLimit bounds the recent-attempts view.
	RecentAttemptLimit = 5
)

// CompletionPercent is the share of the glossary the learner has answered,
// rounded to the nearest integer.
func CompletionPercent(progress domain.UserProgress) int {
	return int(math.Round(100 * float64(progress.AnsweredTerms.Len()) / float64(TotalGlossaryTerms)))
}

// AverageScore is the rounded mean score across all attempts, 0 when the
// history is empty.
func AverageScore(progress domain.UserProgress) int {
	if len(progress.QuizAttempts) == 0 {
		return 0
	}
	sum := 0
	for _, attempt := range progress.QuizAttempts {
		sum += attempt.Score
	}
	return int(math.Round(float64(sum) / float64(len(progress.QuizAttempts))))
}

// RecentAttempts returns the most recent attempts by timestamp, newest first.
func RecentAttempts(progress domain.UserProgress) []domain.QuizAttempt {
	recent := make([]domain.QuizAttempt, len(progress.QuizAttempts))
	copy(recent, progress.QuizAttempts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp > recent[j].Timestamp
	})
	if len(recent) > RecentAttemptLimit {
		recent = recent[:RecentAttemptLimit]
	}
	return recent
}

// CompletedTerms lists the answered terms sorted lexicographically for
// stable display.
func CompletedTerms(progress domain.UserProgress) []string {
	return progress.AnsweredTerms.Sorted()
}

// ProgressOverview is the aggregate view served to clients.
type ProgressOverview struct {
	CompletionPercent int                  `json:"completionPercent"`
	AverageScore      int                  `json:"averageScore"`
	BestScore         int                  `json:"bestScore"`
	TotalAttempts     int                  `json:"totalAttempts"`
	CompletedTerms    []string             `json:"completedTerms"`
	RecentAttempts    []domain.QuizAttempt `json:"recentAttempts"`
}

// BuildOverview computes every derived statistic from one progress snapshot.
func BuildOverview(progress domain.UserProgress) ProgressOverview {
	return ProgressOverview{
		CompletionPercent: CompletionPercent(progress),
		AverageScore:      AverageScore(progress),
		BestScore:         progress.BestScore,
		TotalAttempts:     len(progress.QuizAttempts),
		CompletedTerms:    CompletedTerms(progress),
		RecentAttempts:    RecentAttempts(progress),
	}
}
