package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	appio "github.com/archpadhq/archpad/pkg/io"
)

// redisKeyPrefix namespaces design keys so a shared Redis instance stays
// usable for other tenants.
const redisKeyPrefix = "archpad:design:"

// RedisConfig configures the Redis-backed design store.
type RedisConfig struct {
	Addr     string // host:port, e.g. "localhost:6379"
	Password string // optional
	DB       int    // database index
}

// RedisStore keeps designs as JSON values in Redis. Intended for shared
// multi-instance deployments where a design saved through one server must be
// listed by another.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

func redisKey(name string) string {
	return redisKeyPrefix + name
}

// List scans the design namespace and returns the names in lexical order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan designs: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Get returns the design with the given name, or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, name string) (appio.Diagram, error) {
	if err := ValidateName(name); err != nil {
		return appio.Diagram{}, err
	}
	data, err := s.client.Get(ctx, redisKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return appio.Diagram{}, ErrNotFound
	}
	if err != nil {
		return appio.Diagram{}, fmt.Errorf("get design %s: %w", name, err)
	}

	d, err := appio.UnmarshalDiagram(data)
	if err != nil {
		return appio.Diagram{}, fmt.Errorf("parse design %s: %w", name, err)
	}
	return d, nil
}

// Put stores a design, replacing any previous version. Designs do not expire.
func (s *RedisStore) Put(ctx context.Context, name string, d appio.Diagram) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal design %s: %w", name, err)
	}
	if err := s.client.Set(ctx, redisKey(name), data, 0).Err(); err != nil {
		return fmt.Errorf("set design %s: %w", name, err)
	}
	return nil
}

// Delete removes a design, or returns ErrNotFound.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	removed, err := s.client.Del(ctx, redisKey(name)).Result()
	if err != nil {
		return fmt.Errorf("delete design %s: %w", name, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
