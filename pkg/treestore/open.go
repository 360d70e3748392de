package treestore

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/verluxstands/verlux-api/pkg/config"
)

// Open selects the backend named by cfg.Driver. The Redis client or database
// handle is only required for its own driver.
func Open(cfg config.TreeStoreConfig, rdb redis.UniversalClient, db *sqlx.DB) (Store, error) {
	switch cfg.Driver {
	case config.TreeStoreRedis, "":
		if rdb == nil {
			return nil, fmt.Errorf("tree store %q requires a redis client", config.TreeStoreRedis)
		}
		return NewRedis(rdb, cfg.Prefix), nil
	case config.TreeStorePostgres:
		if db == nil {
			return nil, fmt.Errorf("tree store %q requires a database", config.TreeStorePostgres)
		}
		return NewPostgres(db), nil
	case config.TreeStoreMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown tree store driver %q", cfg.Driver)
	}
}
