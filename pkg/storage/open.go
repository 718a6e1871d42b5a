package storage

import (
	"context"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/config"
	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
)

// BoltFilename is the database file the bolt backend uses inside the data directory
const BoltFilename = "notes.db"

// Open creates the slot backend named by the configuration
func Open(ctx context.Context, cfg *config.Config) (Slots, error) {
	switch cfg.Backend {
	case config.BackendFile:
		slots, err := NewFileSlots(cfg.DataDir)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrTypeStorage, "SLOT_UNAVAILABLE",
				"failed to create data directory").
				WithUserMessage("Unable to create the notes directory. Check permissions").
				WithContext("path", cfg.DataDir)
		}
		return slots, nil

	case config.BackendBolt:
		path := filepath.Join(cfg.DataDir, BoltFilename)
		slots, err := NewBoltSlots(path)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrTypeStorage, "SLOT_UNAVAILABLE",
				"failed to open bolt database").
				WithUserMessage("Unable to open the notes database. Is another instance running?").
				WithContext("path", path)
		}
		return slots, nil

	case config.BackendRedis:
		slots, err := DialRedisSlots(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Prefix)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrTypeStorage, "SLOT_UNAVAILABLE",
				"failed to connect to redis").
				WithUserMessage("Unable to reach the redis server").
				WithContext("addr", cfg.Redis.Addr)
		}
		return slots, nil

	case config.BackendMemory:
		return NewMemorySlots(), nil
	}

	return nil, apperrors.ErrUnknownBackend.WithContext("backend", cfg.Backend)
}
