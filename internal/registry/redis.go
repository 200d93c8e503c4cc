package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKey is the hash holding every binding
const RedisKey = "rental:registry"

// RedisRegistry implements Registry on a Redis hash so that several
// directory servers can share bindings.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry creates a registry over an existing client
func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

// NewRedisClient parses url and pings the server
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Bind binds name to addr, replacing any previous binding
func (r *RedisRegistry) Bind(ctx context.Context, name, addr string) error {
	if err := validateBinding(name, addr); err != nil {
		return err
	}
	if err := r.client.HSet(ctx, RedisKey, name, addr).Err(); err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}
	return nil
}

// Lookup returns the address bound to name
func (r *RedisRegistry) Lookup(ctx context.Context, name string) (string, error) {
	addr, err := r.client.HGet(ctx, RedisKey, name).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrNameNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", name, err)
	}
	return addr, nil
}

// Unbind removes the binding for name
func (r *RedisRegistry) Unbind(ctx context.Context, name string) error {
	removed, err := r.client.HDel(ctx, RedisKey, name).Result()
	if err != nil {
		return fmt.Errorf("unbind %s: %w", name, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", ErrNameNotFound, name)
	}
	return nil
}

// List returns all bindings
func (r *RedisRegistry) List(ctx context.Context) (map[string]string, error) {
	bindings, err := r.client.HGetAll(ctx, RedisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}
	return bindings, nil
}
