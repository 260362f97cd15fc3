package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"

	"ailearn-quiz-service/internal/domain"
)

// KeyValueStore abstracts the record store backing learner progress
// (Redis in production, in-memory otherwise). Get returns
// domain.ErrKeyNotFound for absent keys; Set returns domain.ErrQuotaExceeded
// when the store rejects a write for space.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const (
	recordKeyPrefix = "learner:data:"
	probeKey        = "learner:storage-probe"

	// historyRetainLimit is how many attempts survive quota recovery.
	historyRetainLimit = 50
)

// ProgressService is the sole owner of persisted learner records. It is a
// firewall: persistence faults are logged and answered with safe defaults,
// never propagated to callers.
type ProgressService struct {
	kv        KeyValueStore
	available bool
}

// NewProgressService probes the store once with a throwaway write+delete.
// If the probe fails, the service degrades to a session-scoped in-memory
// fallback for its whole lifetime and StorageAvailable reports false.
func NewProgressService(kv KeyValueStore) *ProgressService {
	svc := &ProgressService{kv: kv, available: true}
	if err := probeStore(kv); err != nil {
		log.Printf("storage probe failed, degrading to in-memory fallback: %v", err)
		svc.kv = newFallbackStore()
		svc.available = false
	}
	return svc
}

func probeStore(kv KeyValueStore) error {
	ctx := context.Background()
	if err := kv.Set(ctx, probeKey, "1"); err != nil {
		return err
	}
	return kv.Delete(ctx, probeKey)
}

// StorageAvailable reports the result of the construction-time probe. The
// value is fixed for the service lifetime; there is no re-probing.
func (s *ProgressService) StorageAvailable() bool {
	return s.available
}

// ProgressPatch carries the fields a caller wants merged into the stored
// record. Nil fields are left untouched.
type ProgressPatch struct {
	QuizHistory   []domain.QuizAttempt
	AnsweredTerms domain.TermSet
}

// PreferencesPatch merges individual preference fields; nil means keep.
type PreferencesPatch struct {
	SelectedRole *string
}

// GetProgress reads, validates, and derives the learner's progress view.
// Any parse or validation failure is logged and answered with defaults.
func (s *ProgressService) GetProgress(ctx context.Context, userID string) domain.UserProgress {
	return domain.DeriveProgress(s.loadRecord(ctx, userID))
}

// UpdateProgress merges the patch into the stored record and writes it back.
// The answered-terms set is serialized to a sorted list at this boundary.
// Write failures are logged and swallowed; callers must not assume the write
// persisted.
func (s *ProgressService) UpdateProgress(ctx context.Context, userID string, patch ProgressPatch) {
	record := s.loadRecord(ctx, userID)
	if patch.QuizHistory != nil {
		record.QuizHistory = patch.QuizHistory
	}
	if patch.AnsweredTerms != nil {
		record.AnsweredTerms = patch.AnsweredTerms.Sorted()
	}
	s.writeRecord(ctx, userID, record)
}

// RecordQuizAttempt validates and appends one completed attempt. Invalid
// attempts are rejected as logged no-ops.
func (s *ProgressService) RecordQuizAttempt(ctx context.Context, userID string, attempt domain.QuizAttempt) {
	if err := domain.ValidateQuizAttempt(attempt); err != nil {
		log.Printf("rejecting quiz attempt for %s: %v", userID, err)
		return
	}
	record := s.loadRecord(ctx, userID)
	history := append(record.QuizHistory, attempt)
	terms := domain.DeriveProgress(domain.StoredUserData{QuizHistory: history}).AnsweredTerms
	s.UpdateProgress(ctx, userID, ProgressPatch{
		QuizHistory:   history,
		AnsweredTerms: terms,
	})
}

// GetPreferences returns the learner's stored preferences, or the zero value
// on any persistence fault.
func (s *ProgressService) GetPreferences(ctx context.Context, userID string) domain.Preferences {
	return s.loadRecord(ctx, userID).Preferences
}

// UpdatePreferences merges the supplied preference fields into the record.
func (s *ProgressService) UpdatePreferences(ctx context.Context, userID string, patch PreferencesPatch) {
	record := s.loadRecord(ctx, userID)
	if patch.SelectedRole != nil {
		record.Preferences.SelectedRole = *patch.SelectedRole
	}
	s.writeRecord(ctx, userID, record)
}

// ClearAllData removes the learner's persisted record entirely.
func (s *ProgressService) ClearAllData(ctx context.Context, userID string) {
	if err := s.kv.Delete(ctx, recordKey(userID)); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		log.Printf("clear data for %s: %v", userID, err)
	}
}

func recordKey(userID string) string {
	return recordKeyPrefix + userID
}

// loadRecord reads and validates the stored record, migrating stale-version
// records in place. Every failure path falls back to defaults.
func (s *ProgressService) loadRecord(ctx context.Context, userID string) domain.StoredUserData {
	raw, err := s.kv.Get(ctx, recordKey(userID))
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.DefaultStoredUserData()
	}
	if err != nil {
		log.Printf("read record for %s: %v", userID, err)
		return domain.DefaultStoredUserData()
	}

	var record domain.StoredUserData
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Printf("corrupt record for %s: %v", userID, err)
		return domain.DefaultStoredUserData()
	}

	if record.Version != domain.CurrentSchemaVersion {
		record = migrateRecord(record)
		s.writeRecord(ctx, userID, record)
	}

	if err := domain.ValidateStoredUserData(record); err != nil {
		log.Printf("invalid record for %s: %v", userID, err)
		return domain.DefaultStoredUserData()
	}
	return record
}

// migrateRecord rewrites a stale-version record to the current schema,
// defaulting missing fields. Migrating a current-version record is a no-op.
func migrateRecord(record domain.StoredUserData) domain.StoredUserData {
	record.Version = domain.CurrentSchemaVersion
	if record.QuizHistory == nil {
		record.QuizHistory = []domain.QuizAttempt{}
	}
	if record.AnsweredTerms == nil {
		record.AnsweredTerms = []string{}
	}
	return record
}

// writeRecord serializes and stores the record. Quota exhaustion triggers one
// recovery attempt: trim history to the most recent attempts and retry. All
// other failures are logged and swallowed.
func (s *ProgressService) writeRecord(ctx context.Context, userID string, record domain.StoredUserData) {
	payload, err := json.Marshal(record)
	if err != nil {
		log.Printf("encode record for %s: %v", userID, err)
		return
	}

	err = s.kv.Set(ctx, recordKey(userID), string(payload))
	if err == nil {
		return
	}
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		log.Printf("write record for %s: %v", userID, err)
		return
	}

	record.QuizHistory = trimHistory(record.QuizHistory, historyRetainLimit)
	record.AnsweredTerms = domain.DeriveProgress(record).AnsweredTerms.Sorted()
	payload, err = json.Marshal(record)
	if err != nil {
		log.Printf("encode trimmed record for %s: %v", userID, err)
		return
	}
	if err := s.kv.Set(ctx, recordKey(userID), string(payload)); err != nil {
		log.Printf("quota recovery failed for %s, dropping update: %v", userID, err)
	}
}

// trimHistory keeps the limit most recent attempts by timestamp, preserving
// chronological order in the result.
func trimHistory(history []domain.QuizAttempt, limit int) []domain.QuizAttempt {
	if len(history) <= limit {
		return history
	}
	trimmed := make([]domain.QuizAttempt, len(history))
	copy(trimmed, history)
	sort.SliceStable(trimmed, func(i, j int) bool {
		return trimmed[i].Timestamp > trimmed[j].Timestamp
	})
	trimmed = trimmed[:limit]
	sort.SliceStable(trimmed, func(i, j int) bool {
		return trimmed[i].Timestamp < trimmed[j].Timestamp
	})
	return trimmed
}

// fallbackStore is the degraded-mode store used when the construction probe
// fails. It lives inside this package (rather than infra/memory) because the
// session registry in infra/memory already depends on app.
type fallbackStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func newFallbackStore() *fallbackStore {
	return &fallbackStore{data: make(map[string]string)}
}

func (f *fallbackStore) Get(_ context.Context, key string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

func (f *fallbackStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fallbackStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}
