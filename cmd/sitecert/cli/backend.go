package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/sitecert/core/config"
	"github.com/dmitrymomot/sitecert/core/logger"
	"github.com/dmitrymomot/sitecert/core/renewal"
	mongostore "github.com/dmitrymomot/sitecert/integration/database/mongo"
	pgstore "github.com/dmitrymomot/sitecert/integration/database/pg"
	redisstore "github.com/dmitrymomot/sitecert/integration/database/redis"
	sqlitestore "github.com/dmitrymomot/sitecert/integration/database/sqlite"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"

	mongoCollection = "renewals"
)

// backend is an opened renewal store with its connection lifecycle.
type backend struct {
	store       renewal.Store
	close       func() error
	healthcheck func(context.Context) error
}

// openRenewalStore connects the backend named kind.
func openRenewalStore(ctx context.Context, kind string, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Component("renewal-store"), slog.String("backend", kind))

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case BackendMemory:
		return &backend{store: renewal.NewMemoryStore(), close: noClose}, nil

	case BackendSQLite:
		var cfg sqlitestore.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := sqlitestore.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		log.DebugContext(ctx, "renewal store opened")
		return &backend{
			store:       sqlitestore.NewRenewalStore(db),
			close:       db.Close,
			healthcheck: sqlitestore.Healthcheck(db),
		}, nil

	case BackendPostgres:
		var cfg pgstore.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pgstore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return nil, err
		}
		log.DebugContext(ctx, "renewal store opened")
		return &backend{
			store:       pgstore.NewRenewalStore(pool),
			close:       func() error { pool.Close(); return nil },
			healthcheck: pgstore.Healthcheck(pool),
		}, nil

	case BackendRedis:
		var cfg redisstore.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redisstore.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.DebugContext(ctx, "renewal store opened")
		return &backend{
			store:       redisstore.NewRenewalStore(client, redisstore.WithKeyPrefix(cfg.KeyPrefix)),
			close:       client.Close,
			healthcheck: redisstore.Healthcheck(client),
		}, nil

	case BackendMongo:
		var cfg mongostore.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := mongostore.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		disconnect := func() error { return client.Disconnect(context.Background()) }
		s, err := mongostore.NewRenewalStore(ctx, client.Database(cfg.Database).Collection(mongoCollection))
		if err != nil {
			_ = disconnect()
			return nil, err
		}
		log.DebugContext(ctx, "renewal store opened")
		return &backend{
			store:       s,
			close:       disconnect,
			healthcheck: mongostore.Healthcheck(client),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenewalStore, kind)
	}
}

func noClose() error { return nil }
