package cache

import (
	"github.com/openbooks/backend/internal/domain/report"
	"github.com/openbooks/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewReportCache builds the report cache configured by cfg. A Redis
// backend that cannot be reached degrades to the in-memory cache so the
// server still starts; reports are then recomputed per instance.
func NewReportCache(cfg *config.Config, logger *zap.Logger) report.Cache {
	if cfg.Cache.Backend == "memory" {
		logger.Info("using in-memory report cache")
		return NewMemoryCache()
	}

	redisCache, err := NewRedisCache(RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory report cache", zap.Error(err))
		return NewMemoryCache()
	}

	logger.Info("using redis report cache", zap.String("addr", cfg.Redis.Addr()))
	return redisCache
}
