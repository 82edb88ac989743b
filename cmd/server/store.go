package main

import (
	"context"
	"fmt"
	"log/slog"

	"validarfc/internal/platform/config"
	"validarfc/internal/platform/postgres"
	"validarfc/internal/platform/redis"
	"validarfc/internal/validation/service"
	"validarfc/internal/validation/store/history"
)

// buildStore opens the configured history backend. An unreachable server is
// only logged: the service degrades per request instead of refusing to start.
func buildStore(ctx context.Context, cfg config.Config, log *slog.Logger) (service.Store, func(), error) {
	switch cfg.History.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			log.Warn("postgres not reachable, history will be degraded", "error", err)
		}
		return history.NewPostgres(db), func() { _ = db.Close() }, nil

	case config.BackendSQLite:
		store, err := history.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.BackendRedis:
		client, err := redis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Health(ctx); err != nil {
			log.Warn("redis not reachable, history will be degraded", "error", err)
		}
		return history.NewRedis(client, cfg.Redis.Key), func() { _ = client.Close() }, nil

	case config.BackendMemory:
		return history.NewInMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}
