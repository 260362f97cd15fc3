package domain

// CurrentSchemaVersion is the schema tag written into every persisted record.
// Records carrying any other version are migrated in place on first load.
const CurrentSchemaVersion = "1.0.0"

// Role identifies the learner perspective a glossary term can be explained for.
type Role string

const (
	RoleEngineer Role = "engineer"
	RoleProduct  Role = "product"
	RoleBusiness Role = "business"
)

// GlossaryTerm is a single entry of the AI glossary. Terms are loaded from a
// static catalog or the database and never mutated at runtime.
type GlossaryTerm struct {
	ID           string          `json:"id"`
	Term         string          `json:"term"`
	Definition   string          `json:"definition"`
	ExternalLink string          `json:"externalLink,omitempty"`
	RoleContext  map[Role]string `json:"roleContext,omitempty"`
}

// QuizQuestion is a multiple-choice question testing one glossary term.
// Options always include CorrectAnswer; correctness is exact string match.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Term          string   `json:"term"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	GlossaryLink  string   `json:"glossaryLink,omitempty"`
}

// QuizAttempt is the immutable record of one completed quiz session.
type QuizAttempt struct {
	Timestamp         int64    `json:"timestamp"` // epoch millis
	Score             int      `json:"score"`
	TotalQuestions    int      `json:"totalQuestions"`
	QuestionsAnswered []string `json:"questionsAnswered"`
}

// Preferences holds the learner's display preferences.
type Preferences struct {
	SelectedRole string `json:"selectedRole,omitempty"`
}

// StoredUserData is the sole persisted entity: one JSON document per user,
// owned exclusively by the progress service. AnsweredTerms is the in-memory
// set serialized as a sorted list at the persistence boundary.
type StoredUserData struct {
	Version       string        `json:"version"`
	QuizHistory   []QuizAttempt `json:"quizHistory"`
	AnsweredTerms []string      `json:"answeredTerms"`
	Preferences   Preferences   `json:"preferences"`
}

// DefaultStoredUserData returns the record written on first access.
func DefaultStoredUserData() StoredUserData {
	return StoredUserData{
		Version:       CurrentSchemaVersion,
		QuizHistory:   []QuizAttempt{},
		AnsweredTerms: []string{},
	}
}

// UserProgress is the derived, in-memory view of a stored record. It is
// recomputed from StoredUserData on every read and never persisted directly.
type UserProgress struct {
	QuizAttempts  []QuizAttempt
	AnsweredTerms TermSet
	BestScore     int
}

// DeriveProgress recomputes the progress view from a stored record.
// BestScore and AnsweredTerms are rederived from the history rather than
// trusted from the record, so manual storage edits cannot skew them.
func DeriveProgress(data StoredUserData) UserProgress {
	progress := UserProgress{
		QuizAttempts:  data.QuizHistory,
		AnsweredTerms: NewTermSet(),
	}
	if progress.QuizAttempts == nil {
		progress.QuizAttempts = []QuizAttempt{}
	}
	for _, attempt := range data.QuizHistory {
		progress.AnsweredTerms.Add(attempt.QuestionsAnswered...)
		if attempt.Score > progress.BestScore {
			progress.BestScore = attempt.Score
		}
	}
	return progress
}
