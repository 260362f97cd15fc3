package redis

import (
	"context"
	"errors"
	"strings"

	"ailearn-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// KVStore is a Redis-backed implementation of app.KeyValueStore. Learner
// records are stored as plain string values with no expiry; progress is
// persistent until the learner clears it.
type KVStore struct {
	client *redis.Client
}

func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	err := s.client.Set(ctx, key, value, 0).Err()
	if err != nil && isOOM(err) {
		return domain.ErrQuotaExceeded
	}
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// isOOM detects Redis maxmemory rejections so the progress service can run
// its trim-and-retry recovery.
func isOOM(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM")
}
