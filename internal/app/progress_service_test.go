package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"ailearn-quiz-service/internal/app"
	"ailearn-quiz-service/internal/domain"
	"ailearn-quiz-service/internal/infra/memory"
)

func TestGetProgressEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := app.NewProgressService(memory.NewKVStore())

	progress := svc.GetProgress(ctx, "u1")
	if len(progress.QuizAttempts) != 0 {
		t.Fatalf("expected no attempts, got %d", len(progress.QuizAttempts))
	}
	if progress.AnsweredTerms.Len() != 0 {
		t.Fatalf("expected empty answered set, got %v", progress.AnsweredTerms.Sorted())
	}
	if progress.BestScore != 0 {
		t.Fatalf("expected best score 0, got %d", progress.BestScore)
	}
}

func TestRecordQuizAttemptRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := app.NewProgressService(memory.NewKVStore())

	svc.RecordQuizAttempt(ctx, "u1", domain.QuizAttempt{
		Timestamp:         1700000000000,
		Score:             2,
		TotalQuestions:    3,
		QuestionsAnswered: []string{"ai", "ml"},
	})

	progress := svc.GetProgress(ctx, "u1")
	if progress.BestScore != 2 {
		t.Fatalf("expected best score 2, got %d", progress.BestScore)
	}
	if got := progress.AnsweredTerms.Sorted(); len(got) != 2 || got[0] != "ai" || got[1] != "ml" {
		t.Fatalf("expected answered {ai, ml}, got %v", got)
	}
	if len(progress.QuizAttempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(progress.QuizAttempts))
	}
}

func TestRecordQuizAttemptRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := app.NewProgressService(memory.NewKVStore())

	svc.RecordQuizAttempt(ctx, "u1", domain.QuizAttempt{
		Timestamp:         1700000000000,
		Score:             5, // beyond totalQuestions
		TotalQuestions:    3,
		QuestionsAnswered: []string{"ai"},
	})

	if got := svc.GetProgress(ctx, "u1"); len(got.QuizAttempts) != 0 {
		t.Fatalf("invalid attempt must be a no-op, got %d attempts", len(got.QuizAttempts))
	}
}

func TestStaleVersionRecordMigratedInPlace(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	if err := kv.Set(ctx, "learner:data:u1", `{"version":"0.9.0"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := app.NewProgressService(kv)

	progress := svc.GetProgress(ctx, "u1")
	if len(progress.QuizAttempts) != 0 || progress.BestScore != 0 {
		t.Fatalf("migrated record should carry defaults, got %+v", progress)
	}

	raw, err := kv.Get(ctx, "learner:data:u1")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var record domain.StoredUserData
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		t.Fatalf("unmarshal migrated record: %v", err)
	}
	if record.Version != domain.CurrentSchemaVersion {
		t.Fatalf("expected version %s, got %s", domain.CurrentSchemaVersion, record.Version)
	}
	if record.QuizHistory == nil || record.AnsweredTerms == nil {
		t.Fatalf("expected missing fields defaulted, got %+v", record)
	}
}

func TestCurrentVersionRecordNotRewritten(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()

	record := domain.DefaultStoredUserData()
	record.QuizHistory = []domain.QuizAttempt{
		{Timestamp: 10, Score: 1, TotalQuestions: 3, QuestionsAnswered: []string{"ai"}},
	}
	record.AnsweredTerms = []string{"ai"}
	seed, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := kv.Set(ctx, "learner:data:u1", string(seed)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := app.NewProgressService(kv)
	_ = svc.GetProgress(ctx, "u1")

	raw, err := kv.Get(ctx, "learner:data:u1")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if raw != string(seed) {
		t.Fatalf("current-version record must not be rewritten on read:\nwas  %s\nnow  %s", seed, raw)
	}
}

func TestCorruptRecordAnsweredWithDefaults(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	if err := kv.Set(ctx, "learner:data:u1", `{not json`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := app.NewProgressService(kv)

	progress := svc.GetProgress(ctx, "u1")
	if len(progress.QuizAttempts) != 0 || progress.BestScore != 0 {
		t.Fatalf("corrupt record should fall back to defaults, got %+v", progress)
	}
}

// quotaKV rejects writes above maxLen with the quota sentinel, emulating a
// size-limited store.
type quotaKV struct {
	app.KeyValueStore
	maxLen int
}

func (q *quotaKV) Set(ctx context.Context, key, value string) error {
	if q.maxLen > 0 && len(value) > q.maxLen {
		return domain.ErrQuotaExceeded
	}
	return q.KeyValueStore.Set(ctx, key, value)
}

func TestQuotaRecoveryTrimsToMostRecent(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewKVStore()

	history := make([]domain.QuizAttempt, 0, 60)
	for i := 0; i < 60; i++ {
		history = append(history, domain.QuizAttempt{
			Timestamp:         int64(1000 * (i + 1)),
			Score:             i % 4,
			TotalQuestions:    3,
			QuestionsAnswered: []string{fmt.Sprintf("term-%02d", i)},
		})
	}
	record := domain.DefaultStoredUserData()
	record.QuizHistory = history
	seed, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if err := mem.Set(ctx, "learner:data:u1", string(seed)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	newAttempt := domain.QuizAttempt{
		Timestamp:         100000,
		Score:             3,
		TotalQuestions:    3,
		QuestionsAnswered: []string{"term-new"},
	}

	// The write with 61 attempts must exceed the quota; the trimmed retry
	// must fit. Compute the oversized payload the service will produce.
	full := record
	full.QuizHistory = append(append([]domain.QuizAttempt{}, history...), newAttempt)
	full.AnsweredTerms = domain.DeriveProgress(full).AnsweredTerms.Sorted()
	fullPayload, err := json.Marshal(full)
	if err != nil {
		t.Fatalf("marshal full record: %v", err)
	}

	kv := &quotaKV{KeyValueStore: mem, maxLen: len(fullPayload) - 1}
	svc := app.NewProgressService(kv)

	svc.RecordQuizAttempt(ctx, "u1", newAttempt)

	progress := svc.GetProgress(ctx, "u1")
	if len(progress.QuizAttempts) != 50 {
		t.Fatalf("expected exactly 50 attempts after trim, got %d", len(progress.QuizAttempts))
	}
	for _, attempt := range progress.QuizAttempts {
		if attempt.Timestamp < 12000 {
			t.Fatalf("expected only the 50 most recent attempts kept, found timestamp %d", attempt.Timestamp)
		}
	}
	if !progress.AnsweredTerms.Has("term-new") {
		t.Fatalf("expected the triggering attempt to survive the trim")
	}
	if progress.QuizAttempts[len(progress.QuizAttempts)-1].Timestamp != 100000 {
		t.Fatalf("expected history to stay chronological after trim, got %+v", progress.QuizAttempts[len(progress.QuizAttempts)-1])
	}
}

// brokenKV fails every operation, simulating a disabled store.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, error) {
	return "", errors.New("store disabled")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("store disabled") }
func (brokenKV) Delete(context.Context, string) error      { return errors.New("store disabled") }

func TestProbeFailureDegradesToFallback(t *testing.T) {
	ctx := context.Background()
	svc := app.NewProgressService(brokenKV{})

	if svc.StorageAvailable() {
		t.Fatalf("expected storage to be reported unavailable")
	}

	// Operations still work against the session-scoped fallback.
	svc.RecordQuizAttempt(ctx, "u1", domain.QuizAttempt{
		Timestamp:         1,
		Score:             1,
		TotalQuestions:    3,
		QuestionsAnswered: []string{"ai"},
	})
	if got := svc.GetProgress(ctx, "u1"); got.BestScore != 1 {
		t.Fatalf("expected fallback to hold the attempt, got %+v", got)
	}
}

func TestPreferencesMerge(t *testing.T) {
	ctx := context.Background()
	svc := app.NewProgressService(memory.NewKVStore())

	if prefs := svc.GetPreferences(ctx, "u1"); prefs.SelectedRole != "" {
		t.Fatalf("expected empty preferences, got %+v", prefs)
	}

	role := "engineer"
	svc.UpdatePreferences(ctx, "u1", app.PreferencesPatch{SelectedRole: &role})
	if prefs := svc.GetPreferences(ctx, "u1"); prefs.SelectedRole != "engineer" {
		t.Fatalf("expected selectedRole engineer, got %+v", prefs)
	}

	// Nil field leaves the stored value untouched.
	svc.UpdatePreferences(ctx, "u1", app.PreferencesPatch{})
	if prefs := svc.GetPreferences(ctx, "u1"); prefs.SelectedRole != "engineer" {
		t.Fatalf("expected selectedRole preserved, got %+v", prefs)
	}
}

func TestClearAllData(t *testing.T) {
	ctx := context.Background()
	svc := app.NewProgressService(memory.NewKVStore())

	svc.RecordQuizAttempt(ctx, "u1", domain.QuizAttempt{
		Timestamp:         1,
		Score:             2,
		TotalQuestions:    3,
		QuestionsAnswered: []string{"ai", "ml"},
	})
	svc.ClearAllData(ctx, "u1")

	progress := svc.GetProgress(ctx, "u1")
	if len(progress.QuizAttempts) != 0 || progress.AnsweredTerms.Len() != 0 || progress.BestScore != 0 {
		t.Fatalf("expected cleared progress, got %+v", progress)
	}
}
