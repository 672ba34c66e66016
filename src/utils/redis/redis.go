package redis_utils

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"famwealth/src/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned by Get when the key is absent or expired.
var ErrKeyNotFound = errors.New("key does not exist")

// RedisHandler encapsulates the Redis client and provides utility methods.
type RedisHandler struct {
	client *redis.Client
}

// NewRedisHandler connects to the configured Redis and pings it.
func NewRedisHandler(ctx context.Context, cfg config.RedisConfig) (*RedisHandler, error) {
	opts := &redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisHandler{client: client}, nil
}

// NewRedisHandlerFromClient wraps an existing client.
func NewRedisHandlerFromClient(client *redis.Client) *RedisHandler {
	return &RedisHandler{client: client}
}

// Set stores a key-value pair in Redis with an optional expiration.
func (r *RedisHandler) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// Get retrieves and deserializes the value of a key into result.
func (r *RedisHandler) Get(ctx context.Context, key string, result interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	} else if err != nil {
		return fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal([]byte(data), result); err != nil {
		return fmt.Errorf("failed to deserialize value: %w", err)
	}
	return nil
}

// Delete removes a key from Redis.
func (r *RedisHandler) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Exists checks if a key exists in Redis.
func (r *RedisHandler) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return count > 0, nil
}

// Publish sends a JSON payload to a pub/sub channel.
func (r *RedisHandler) Publish(ctx context.Context, channel string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return r.client.Publish(ctx, channel, data).Err()
}

// Subscribe returns the raw messages of channel until ctx is done. It returns
// once the subscription is confirmed by the server.
func (r *RedisHandler) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	sub := r.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}
	out := make(chan []byte)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// GenerateUUID returns a deterministic UUID derived from the inputs.
func GenerateUUID(inputs ...string) string {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewMD5(namespace, []byte(strings.Join(inputs, "|"))).String()
}

// Close closes the Redis client connection.
func (r *RedisHandler) Close() error {
	return r.client.Close()
}
