package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"ailearn-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches quiz and glossary content from a backing store.
type CatalogLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.QuizQuestion, error)
	LoadGlossary(ctx context.Context) ([]domain.GlossaryTerm, error)
}

const (
	questionsKey = "catalog:questions"
	glossaryKey  = "catalog:glossary"
)

// CatalogCache caches the serialized catalog in Redis with TTL and falls
// back to the loader on cache miss.
type CatalogCache struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogCache(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) Questions(ctx context.Context) ([]domain.QuizQuestion, error) {
	var questions []domain.QuizQuestion
	err := c.cached(ctx, questionsKey, &questions, func() (interface{}, error) {
		return c.loader.LoadQuestions(ctx)
	})
	return questions, err
}

func (c *CatalogCache) Glossary(ctx context.Context) ([]domain.GlossaryTerm, error) {
	var glossary []domain.GlossaryTerm
	err := c.cached(ctx, glossaryKey, &glossary, func() (interface{}, error) {
		return c.loader.LoadGlossary(ctx)
	})
	return glossary, err
}

// cached reads key into out, loading and filling the cache on miss. The
// singleflight group collapses concurrent misses into one loader call.
func (c *CatalogCache) cached(ctx context.Context, key string, out interface{}, load func() (interface{}, error)) error {
	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return json.Unmarshal([]byte(raw), out)
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := c.client.Get(ctx, key).Result()
		if err == nil {
			return []byte(raw), nil
		}

		loaded, err := load()
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(loaded)
		if err != nil {
			return nil, err
		}
		// best-effort fill
		_ = c.client.Set(ctx, key, payload, c.ttlWithJitter()).Err()
		return payload, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(result.([]byte), out)
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
