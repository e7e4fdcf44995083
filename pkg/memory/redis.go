package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tagus/supplysense/pkg/interfaces"
	"github.com/tagus/supplysense/pkg/retry"
)

// RedisContextMemory is a Redis-backed context memory. Entries live in
// a single capped list, so multiple processes pointed at the same key
// share one rolling context.
type RedisContextMemory struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	agentKey  string
	max       int
}

// RedisOption configures a RedisContextMemory.
type RedisOption func(*RedisContextMemory)

// WithTTL sets the expiry refreshed on every append.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *RedisContextMemory) {
		r.ttl = ttl
	}
}

// WithKeyPrefix sets a custom prefix for the Redis key.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisContextMemory) {
		r.keyPrefix = prefix
	}
}

// WithAgentKey isolates the context of one agent from others sharing
// the same Redis database.
func WithAgentKey(key string) RedisOption {
	return func(r *RedisContextMemory) {
		r.agentKey = key
	}
}

// WithMaxEntries sets the retention cap.
func WithMaxEntries(max int) RedisOption {
	return func(r *RedisContextMemory) {
		r.max = max
	}
}

// RedisConfig contains the connection settings for Redis.
type RedisConfig struct {
	// URL is the Redis address (e.g. "localhost:6379").
	URL string

	// Password is the Redis password.
	Password string

	// DB is the Redis database number.
	DB int
}

// NewRedisContextMemory creates a Redis-backed context memory on an
// existing client.
func NewRedisContextMemory(client *redis.Client, options ...RedisOption) *RedisContextMemory {
	r := &RedisContextMemory{
		client:    client,
		ttl:       24 * time.Hour,
		keyPrefix: "supplysense:context:",
		agentKey:  "default",
		max:       DefaultMaxEntries,
	}
	for _, option := range options {
		option(r)
	}
	if r.max <= 0 {
		r.max = DefaultMaxEntries
	}
	return r
}

// NewRedisContextMemoryFromConfig dials Redis and verifies the
// connection before returning the memory. The ping is retried with
// backoff so a Redis that is still coming up does not fail the caller.
func NewRedisContextMemoryFromConfig(config RedisConfig, options ...RedisOption) (*RedisContextMemory, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.URL,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx := context.Background()
	err := retry.NewExecutor(retry.DefaultPolicy()).Execute(ctx, func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisContextMemory(client, options...), nil
}

func (r *RedisContextMemory) key() string {
	return r.keyPrefix + r.agentKey
}

// Append implements interfaces.ContextMemory. The list is trimmed to
// the cap and the TTL refreshed on every call.
func (r *RedisContextMemory) Append(ctx context.Context, entry interfaces.ContextEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal context entry: %w", err)
	}

	key := r.key()
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-r.max), -1)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append context entry: %w", err)
	}
	return nil
}

// Recent implements interfaces.ContextMemory, returning up to n entries
// with the most recent last.
func (r *RedisContextMemory) Recent(ctx context.Context, n int) ([]interfaces.ContextEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	results, err := r.client.LRange(ctx, r.key(), int64(-n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read context entries: %w", err)
	}

	entries := make([]interfaces.ContextEntry, 0, len(results))
	for _, result := range results {
		var entry interfaces.ContextEntry
		if err := json.Unmarshal([]byte(result), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal context entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear drops all remembered entries.
func (r *RedisContextMemory) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("failed to clear context memory: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (r *RedisContextMemory) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
