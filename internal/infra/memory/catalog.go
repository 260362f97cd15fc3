package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"ailearn-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches quiz and glossary content from a backing store.
type CatalogLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.QuizQuestion, error)
	LoadGlossary(ctx context.Context) ([]domain.GlossaryTerm, error)
}

// CatalogRepository caches the full catalog with TTL to avoid repeated
// loader hits.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu     sync.RWMutex
	cached *cachedCatalog
}

type cachedCatalog struct {
	questions []domain.QuizQuestion
	glossary  []domain.GlossaryTerm
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) Questions(ctx context.Context) ([]domain.QuizQuestion, error) {
	catalog, err := r.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.questions, nil
}

func (r *CatalogRepository) Glossary(ctx context.Context) ([]domain.GlossaryTerm, error) {
	catalog, err := r.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.glossary, nil
}

func (r *CatalogRepository) catalog(ctx context.Context) (*cachedCatalog, error) {
	now := r.clock()

	r.mu.RLock()
	if r.cached != nil && r.cached.expiresAt.After(now) {
		defer r.mu.RUnlock()
		return r.cached, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("catalog", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached != nil && r.cached.expiresAt.After(now) {
			defer r.mu.RUnlock()
			return r.cached, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		glossary, err := r.loader.LoadGlossary(ctx)
		if err != nil {
			return nil, err
		}

		fresh := &cachedCatalog{
			questions: questions,
			glossary:  glossary,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Lock()
		r.cached = fresh
		r.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*cachedCatalog), nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
