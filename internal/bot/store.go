package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/edgard/atbot/internal/config"
	"github.com/edgard/atbot/internal/store"
	"github.com/edgard/atbot/internal/store/file"
	"github.com/edgard/atbot/internal/store/memory"
	"github.com/edgard/atbot/internal/store/redis"
	"github.com/edgard/atbot/internal/store/s3"
	"github.com/edgard/atbot/internal/store/sqlite"
)

// OpenStore builds the profile store selected by cfg.Store.Backend.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.New(), nil

	case config.BackendFile:
		s, err := file.NewOS(file.Options{
			Root:   cfg.Store.Root,
			Format: store.Format(cfg.Store.Format),
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.Database.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		s, err := sqlite.Open(cfg.Database.Path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendRedis:
		s, err := redis.New(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendS3:
		s, err := s3.New(ctx, s3.Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PathStyle: cfg.S3.PathStyle,
			Prefix:    cfg.S3.Prefix,
		}, logger)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
