package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSlots keeps each blob as a redis string under prefix+key
type RedisSlots struct {
	client *redis.Client
	prefix string
	owned  bool
}

// NewRedisSlots wraps an existing client. Close leaves the client open.
func NewRedisSlots(client *redis.Client, prefix string) *RedisSlots {
	if client == nil {
		panic("storage.NewRedisSlots: client is nil")
	}
	return &RedisSlots{client: client, prefix: prefix}
}

// DialRedisSlots creates its own client and checks the server is reachable
func DialRedisSlots(ctx context.Context, opts *redis.Options, prefix string) (*RedisSlots, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisSlots{client: client, prefix: prefix, owned: true}, nil
}

func (r *RedisSlots) redisKey(key string) string {
	return r.prefix + key
}

// Get implements Slots
func (r *RedisSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set implements Slots
func (r *RedisSlots) Set(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, r.redisKey(key), data, 0).Err()
}

// Close implements Slots
func (r *RedisSlots) Close() error {
	if r.owned {
		return r.client.Close()
	}
	return nil
}
