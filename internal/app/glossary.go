package app

import (
	"strings"

	"ailearn-quiz-service/internal/domain"
)

// FilterGlossary returns the terms whose name or definition contains the
// query, case-insensitively. An empty query returns the full list.
func FilterGlossary(terms []domain.GlossaryTerm, query string) []domain.GlossaryTerm {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return terms
	}
	matched := make([]domain.GlossaryTerm, 0, len(terms))
	for _, term := range terms {
		if strings.Contains(strings.ToLower(term.Term), query) ||
			strings.Contains(strings.ToLower(term.Definition), query) {
			matched = append(matched, term)
		}
	}
	return matched
}
