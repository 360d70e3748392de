package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/pkg/cache"
	"github.com/verluxstands/verlux-api/pkg/config"
	"github.com/verluxstands/verlux-api/pkg/database"
	"github.com/verluxstands/verlux-api/pkg/logger"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

const commandTimeout = 30 * time.Second

// env holds the connections a command needs. Close releases them.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB
	redis  *redis.Client
	store  treestore.Store
}

func (e *env) Close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.logger.Sync()
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logr, nil
}

// openDatabase connects to Postgres only.
func openDatabase(ctx context.Context) (*env, error) {
	cfg, logr, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logr, db: db}, nil
}

// openStore connects only what the configured tree store driver needs.
func openStore(ctx context.Context) (*env, error) {
	cfg, logr, err := loadConfig()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, logger: logr}

	var rdb redis.UniversalClient
	switch cfg.TreeStore.Driver {
	case config.TreeStoreRedis, "":
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		e.redis, rdb = client, client
	case config.TreeStorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		e.db = db
	}

	store, err := treestore.Open(cfg.TreeStore, rdb, e.db)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = store
	return e, nil
}
