package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/blog-api/internal/config"
	"github.com/baharkarakas/blog-api/internal/db"
	"github.com/baharkarakas/blog-api/internal/repository"
	"github.com/baharkarakas/blog-api/internal/repository/memory"
	"github.com/baharkarakas/blog-api/internal/repository/mongodb"
	"github.com/baharkarakas/blog-api/internal/repository/postgres"
)

// openStore connects the configured driver. With migrate set, postgres
// migrations run before the repositories are returned; mongo indexes are
// always ensured since creating them is idempotent.
func openStore(ctx context.Context, cfg config.Config, migrate bool) (repository.Set, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		mdb, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return repository.Set{}, fmt.Errorf("mongo connect: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, mdb); err != nil {
			_ = mdb.Client().Disconnect(ctx)
			return repository.Set{}, fmt.Errorf("mongo indexes: %w", err)
		}
		return mongodb.NewRepositories(mdb), nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return repository.Set{}, fmt.Errorf("db connect: %w", err)
		}
		if migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return repository.Set{}, fmt.Errorf("migrations: %w", err)
			}
		}
		return postgres.NewRepositories(pool), nil

	case config.DriverMemory:
		slog.Warn("using in-memory store; data is lost on exit")
		return memory.NewRepositories(), nil
	}
	return repository.Set{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
