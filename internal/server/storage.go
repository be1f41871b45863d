package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/uks-api/internal/repository"
	"github.com/noah-isme/uks-api/pkg/cache"
	"github.com/noah-isme/uks-api/pkg/config"
	"github.com/noah-isme/uks-api/pkg/database"
	"github.com/noah-isme/uks-api/pkg/storage"
)

// OpenBlobStore connects the backend selected by STORAGE_DRIVER. The returned
// closer releases its connections.
func OpenBlobStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (repository.BlobStore, func(), error) {
	if logr == nil {
		logr = zap.NewNop()
	}
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		logr.Warn("using in-memory storage; data is lost on restart")
		return repository.NewMemoryBlobStore(), noop, nil

	case config.StorageFile:
		local, err := storage.NewLocalStorage(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage dir: %w", err)
		}
		logr.Info("using file storage", zap.String("dir", local.Path("")))
		return repository.NewFileBlobStore(local), noop, nil

	case config.StorageSQLite:
		db, err := database.NewSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := repository.NewSQLiteBlobStore(db)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logr.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
		return store, closer, nil

	case config.StoragePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewPostgresBlobStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logr.Info("using postgres storage", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.Name))
		return store, func() { _ = db.Close() }, nil

	case config.StorageRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logr.Info("using redis storage", zap.String("prefix", cfg.Redis.KeyPrefix))
		return repository.NewRedisBlobStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
