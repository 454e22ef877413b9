package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nhle/tasktracker/internal/credential"
	"github.com/nhle/tasktracker/internal/model"
)

// RedisPasswordEnv overrides the keyring lookup for the Redis password.
const RedisPasswordEnv = "TASKTRACKER_REDIS_PASSWORD"

// secrets resolves the Redis password; replaced in tests.
var secrets = credential.Resolver{}

// Open returns the backend named by cfg.Backend.
func Open(ctx context.Context, cfg model.StorageConfig, log logrus.FieldLogger) (KV, error) {
	log = log.WithField("backend", cfg.Backend)

	switch cfg.Backend {
	case model.BackendSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory %s: %w", dir, err)
			}
		}
		s, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.Path).Info("opened sqlite store")
		return s, nil

	case model.BackendRedis:
		password, err := secrets.Resolve(RedisPasswordEnv, cfg.Redis.PasswordKey)
		if err != nil {
			return nil, fmt.Errorf("resolving redis password: %w", err)
		}
		s, err := NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		log.WithField("addr", cfg.Redis.Addr).Info("connected to redis store")
		return s, nil

	case model.BackendMemory:
		log.Warn("using in-memory store; tasks will not survive exit")
		return NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
