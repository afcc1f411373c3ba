package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. Daily stats are never cached: the dashboard read must
// reflect every aggregator write that completed before it began.
const (
	TTLProfile = 5 * time.Minute // public profile pages (slug lookups)
	TTLDefault = 5 * time.Minute // fallback
)

// PrefixSlug keys cached public pages by profile slug
const PrefixSlug = "slug:"

// ErrCacheMiss is returned when a key is not present
var ErrCacheMiss = errors.New("cache miss")

// Service is the Redis-backed JSON cache used for public profile reads
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetProfileBySlug(ctx context.Context, slug string, dest interface{}) error
	SetProfileBySlug(ctx context.Context, slug string, data interface{}) error
	InvalidateProfile(ctx context.Context, slug string) error
}

type service struct {
	client *redis.Client
}

// NewService creates a Redis cache service
func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *service) GetProfileBySlug(ctx context.Context, slug string, dest interface{}) error {
	return s.Get(ctx, PrefixSlug+slug, dest)
}

func (s *service) SetProfileBySlug(ctx context.Context, slug string, data interface{}) error {
	return s.Set(ctx, PrefixSlug+slug, data, TTLProfile)
}

func (s *service) InvalidateProfile(ctx context.Context, slug string) error {
	return s.Delete(ctx, PrefixSlug+slug)
}
