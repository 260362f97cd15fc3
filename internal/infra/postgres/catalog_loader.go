package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"ailearn-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads the glossary and question pool from Postgres JSONB
// rows.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadQuestions(ctx context.Context) ([]domain.QuizQuestion, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM quiz_questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.QuizQuestion
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var question domain.QuizQuestion
		if err := json.Unmarshal(raw, &question); err != nil {
			return nil, fmt.Errorf("unmarshal question: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (l *CatalogLoader) LoadGlossary(ctx context.Context) ([]domain.GlossaryTerm, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM glossary_terms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}
	defer rows.Close()

	var terms []domain.GlossaryTerm
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		var term domain.GlossaryTerm
		if err := json.Unmarshal(raw, &term); err != nil {
			return nil, fmt.Errorf("unmarshal term: %w", err)
		}
		terms = append(terms, term)
	}
	return terms, rows.Err()
}
