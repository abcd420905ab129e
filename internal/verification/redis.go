package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "verification:"

// consumeScript deletes the key only when the stored code equals ARGV[1].
// Running it as one script gives a single winner among concurrent verifications.
var consumeScript = redis.NewScript(`
local stored = redis.call('GET', KEYS[1])
if not stored then
  return 0
end
if string.lower(stored) == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return 1
end
return 0
`)

// RedisStore keeps codes in Redis so several server instances share them.
// Expiry is delegated to key TTLs.
type RedisStore struct {
	client  redis.UniversalClient
	ttl     time.Duration
	newCode func() (string, error)
}

// NewRedisStore returns a store backed by client; codes live for ttl (DefaultTTL if ttl <= 0).
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, newCode: GenerateCode}
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("verification: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("verification: ping redis: %w", err)
	}
	return client, nil
}

// Issue stores a new code for key with the store TTL, replacing any earlier code.
func (s *RedisStore) Issue(ctx context.Context, key string) (string, error) {
	code, err := s.newCode()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("verification: store code: %w", err)
	}
	return code, nil
}

// Verify atomically compares and consumes the code for key.
func (s *RedisStore) Verify(ctx context.Context, key, candidate string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{redisKeyPrefix + key}, normalize(candidate)).Int()
	if err != nil {
		return false, fmt.Errorf("verification: consume code: %w", err)
	}
	return n == 1, nil
}
