package regions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/connline/pkg/geom"
)

// DefaultRedisKey is the hash that RedisStore reads when no key is given.
const DefaultRedisKey = "connline:regions"

// hashClient is the subset of *redis.Client that RedisStore needs.
type hashClient interface {
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RedisStore reads regions from a single Redis hash whose fields are region
// references and whose values are JSON rectangles:
//
//	HSET connline:regions "#sidebar" '{"left":0,"top":0,"width":240,"height":800}'
type RedisStore struct {
	client hashClient
	key    string
}

// NewRedisStore returns a store reading the hash at key. An empty key means
// [DefaultRedisKey].
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return newRedisStore(client, key)
}

func newRedisStore(client hashClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// OpenRedisStore connects to the Redis server at url (redis:// or rediss://).
func OpenRedisStore(url, key string) (*RedisStore, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	return NewRedisStore(client, key), client, nil
}

// Fetch implements Store with a single HMGET.
func (s *RedisStore) Fetch(ctx context.Context, refs []string) (map[string]geom.Rect, error) {
	vals, err := s.client.HMGet(ctx, s.key, refs...).Result()
	if err != nil {
		if isTransient(err) {
			return nil, Retryable(err)
		}
		return nil, fmt.Errorf("hmget %s: %w", s.key, err)
	}

	out := make(map[string]geom.Rect, len(refs))
	for i, v := range vals {
		if i >= len(refs) || v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			continue
		}
		var r geom.Rect
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			return nil, fmt.Errorf("decode region %q: %w", refs[i], err)
		}
		out[refs[i]] = r
	}
	return out, nil
}

// Put stores rectangles in the hash, overwriting existing entries.
func (s *RedisStore) Put(ctx context.Context, t Table) error {
	if len(t) == 0 {
		return nil
	}
	values := make([]interface{}, 0, 2*len(t))
	for _, ref := range t.Refs() {
		b, err := json.Marshal(t[ref])
		if err != nil {
			return fmt.Errorf("encode region %q: %w", ref, err)
		}
		values = append(values, ref, string(b))
	}
	if err := s.client.HSet(ctx, s.key, values...).Err(); err != nil {
		if isTransient(err) {
			return Retryable(err)
		}
		return fmt.Errorf("hset %s: %w", s.key, err)
	}
	return nil
}

// isTransient reports whether err is a network or deadline failure worth
// retrying.
func isTransient(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded)
}
