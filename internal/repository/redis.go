package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces fingerprint keys.
const DefaultRedisPrefix = "passgen:fingerprint:"

// counterKey is appended to the prefix for the issued counter. Fingerprints
// are hex, so it cannot collide with one.
const counterKey = "issued"

// claimScript sets the fingerprint key if absent and bumps the counter in the
// same step. It returns 1 when the key was created.
var claimScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 1 then
	redis.call("INCR", KEYS[2])
	return 1
end
return 0
`)

// RedisFingerprintRepository stores each fingerprint as a key whose value is
// the time it was issued, plus a counter of issued fingerprints.
type RedisFingerprintRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisFingerprintRepository creates a repository using client. An empty
// prefix selects DefaultRedisPrefix.
func NewRedisFingerprintRepository(client *redis.Client, prefix string) *RedisFingerprintRepository {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisFingerprintRepository{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisFingerprintRepository) key(hash string) string {
	return r.prefix + hash
}

// Exists reports whether hash has been recorded.
func (r *RedisFingerprintRepository) Exists(ctx context.Context, hash string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(hash)).Result()
	if err != nil {
		return false, fmt.Errorf("check fingerprint: %w", err)
	}
	return n > 0, nil
}

// Record stores hash; an existing key is left untouched.
func (r *RedisFingerprintRepository) Record(ctx context.Context, hash string) error {
	if _, err := r.claim(ctx, hash); err != nil {
		return fmt.Errorf("record fingerprint: %w", err)
	}
	return nil
}

// Claim stores hash and reports whether this call created it.
func (r *RedisFingerprintRepository) Claim(ctx context.Context, hash string) (bool, error) {
	ok, err := r.claim(ctx, hash)
	if err != nil {
		return false, fmt.Errorf("claim fingerprint: %w", err)
	}
	return ok, nil
}

func (r *RedisFingerprintRepository) claim(ctx context.Context, hash string) (bool, error) {
	issued := time.Now().UTC().Format(time.RFC3339)
	keys := []string{r.key(hash), r.prefix + counterKey}
	n, err := claimScript.Run(ctx, r.client, keys, issued).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Count returns the issued counter.
func (r *RedisFingerprintRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.Get(ctx, r.prefix+counterKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count fingerprints: %w", err)
	}
	return n, nil
}
