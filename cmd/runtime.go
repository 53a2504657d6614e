package cmd

import (
	"context"
	"fmt"

	"row-merger/core/config"
	"row-merger/core/database"
	"row-merger/core/dataset"
	"row-merger/core/logger"
	"row-merger/core/storage"
	"row-merger/feature/merge"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the services shared by commands.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	store   storage.Client
	history *merge.History
}

// newRuntime loads configuration and connects the optional backends.
// A failing database is logged and skipped; history is then disabled.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: l}

	if cfg.Database.Enabled() {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed", zap.Error(err))
		} else {
			history := merge.NewHistory(db)
			if err := history.Migrate(ctx); err != nil {
				l.Warn("Merge history unavailable", zap.Error(err))
			} else {
				rt.history = history
			}
			rt.db = db
			l.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	rt.store = store

	return rt, nil
}

// resolver builds a dataset resolver over the connected backends.
func (rt *runtime) resolver(opts dataset.ReadOptions, allowFiles bool) *dataset.Resolver {
	return &dataset.Resolver{
		Storage:    rt.store,
		Bucket:     rt.cfg.Storage.Bucket,
		DB:         rt.db,
		Options:    opts,
		AllowFiles: allowFiles,
	}
}

// service builds a merge service over the connected backends.
func (rt *runtime) service(resolver *dataset.Resolver) *merge.Service {
	return merge.NewService(resolver, rt.history, rt.cfg.Merge, rt.cfg.Dataset, rt.log)
}

func (rt *runtime) close() {
	_ = rt.log.Sync()
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
