package app

import (
	"context"
	"errors"

	"bingo-service/internal/config"
	"bingo-service/internal/db"
	"bingo-service/internal/logger"
	"bingo-service/internal/redis"
	"bingo-service/internal/session"
)

type Infra struct {
	DB       *db.DB
	Redis    *redis.Client // nil unless SESSION_BACKEND=redis
	Sessions session.Store
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	database, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	logger.Info("database ready", map[string]any{
		"driver": cfg.DatabaseDriver,
	})

	infra := &Infra{DB: database}

	switch cfg.SessionBackend {
	case "redis":
		redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			_ = database.Close()
			return nil, err
		}
		infra.Redis = redisClient
		infra.Sessions = session.NewRedisStore(redisClient.Client)
		logger.Info("redis ready", map[string]any{
			"addr": cfg.RedisAddr,
		})
	default:
		infra.Sessions = session.NewMemoryStore()
		logger.Warn("using in-memory sessions", nil)
	}

	return infra, nil
}

// Close releases every connection the infra holds.
func (i *Infra) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	errs = append(errs, i.DB.Close())
	return errors.Join(errs...)
}
