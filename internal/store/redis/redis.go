// Package redis stores each profile as one string key holding the JSON
// record. SET replaces the value atomically, so readers never observe a
// partial write.
package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/edgard/atbot/internal/store"
)

// Options configures the redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Logger   *slog.Logger
}

// Store implements store.Store on a redis client.
type Store struct {
	client goredis.UniversalClient
	prefix string
	logger *slog.Logger
}

// New connects to redis and checks the connection.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return NewWithClient(client, opts.Prefix, opts.Logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client goredis.UniversalClient, prefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		client: client,
		prefix: prefix,
		logger: logger.With("component", "redis_store"),
	}
}

func (s *Store) redisKey(key string) string {
	return s.prefix + store.Namespace + ":" + key
}

// Load fetches and decodes the record for key.
func (s *Store) Load(ctx context.Context, key string) (*store.Profile, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		s.logger.DebugContext(ctx, "No profile found", "key", key)
		return nil, store.NotFound(key)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get profile", "key", key, "error", err)
		return nil, store.ReadError(key, err)
	}

	p, err := store.Decode(store.FormatJSON, data)
	if err != nil {
		s.logger.WarnContext(ctx, "Corrupt profile value", "key", key, "error", err)
		return nil, store.ReadError(key, err)
	}
	return p, nil
}

// Save encodes p and stores it under its key with no expiry.
func (s *Store) Save(ctx context.Context, p *store.Profile) error {
	if p == nil {
		return store.WriteError("", fmt.Errorf("cannot save nil profile"))
	}
	data, err := store.Encode(store.FormatJSON, p)
	if err != nil {
		return store.WriteError(p.Nickname, err)
	}
	if err := s.client.Set(ctx, s.redisKey(p.Nickname), data, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to set profile", "key", p.Nickname, "error", err)
		return store.WriteError(p.Nickname, err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
