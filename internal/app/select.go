package app

import (
	"math/rand"

	"ailearn-quiz-service/internal/domain"
)

// SelectRandomQuestions picks up to count distinct questions from the pool,
// preferring terms outside the exclude set. When too few fresh terms remain,
// already-answered terms backfill the quiz; fewer than count questions
// (possibly zero) are returned only when the pool itself is short.
func SelectRandomQuestions(pool []domain.QuizQuestion, count int, exclude domain.TermSet) []domain.QuizQuestion {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	shuffled := shuffleQuestions(pool)
	fresh := make([]domain.QuizQuestion, 0, len(shuffled))
	seen := make([]domain.QuizQuestion, 0, len(shuffled))
	for _, question := range shuffled {
		if exclude.Has(question.Term) {
			seen = append(seen, question)
		} else {
			fresh = append(fresh, question)
		}
	}

	selected := append(fresh, seen...)
	if count > len(selected) {
		count = len(selected)
	}
	return selected[:count]
}

// shuffleQuestions returns a Fisher-Yates shuffled copy, leaving the pool
// untouched.
func shuffleQuestions(pool []domain.QuizQuestion) []domain.QuizQuestion {
	shuffled := make([]domain.QuizQuestion, len(pool))
	copy(shuffled, pool)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
