package cmd

import (
	"context"
	"fmt"

	"orderdesk/internal/adapters/out/memory"
	"orderdesk/internal/adapters/out/postgres"
	redisadapter "orderdesk/internal/adapters/out/redis"
	"orderdesk/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "orderdesk"

// OpenStorage connects the configured order storage. The returned close
// function releases it.
func OpenStorage(config Config, logger *zap.Logger) (ports.UnitOfWorkFactory, func() error, error) {
	switch config.StorageDriver {
	case StoragePostgres:
		db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using postgres storage", zap.String("host", config.DBHost), zap.String("database", config.DBName))
		return postgres.NewGormUnitOfWorkFactory(db), sqlDB.Close, nil
	default:
		logger.Info("Using in-memory storage")
		return memory.NewUnitOfWorkFactory(memory.NewStore()), func() error { return nil }, nil
	}
}

// OpenMetricsCache returns the Redis cache when REDIS_ADDR is set and
// reachable, the in-process cache otherwise, and nil when caching is off.
func OpenMetricsCache(ctx context.Context, config Config, logger *zap.Logger) (ports.MetricsCache, func() error) {
	noop := func() error { return nil }
	if config.MetricsCacheTTL == 0 {
		logger.Info("Metrics cache disabled")
		return nil, noop
	}

	if config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis is unreachable, using in-process metrics cache",
				zap.String("addr", config.RedisAddr), zap.Error(err))
			_ = client.Close()
		} else {
			logger.Info("Using redis metrics cache", zap.String("addr", config.RedisAddr))
			return redisadapter.NewMetricsCache(client, serviceName, config.MetricsCacheTTL, logger.Named("metrics_cache")), client.Close
		}
	}

	return memory.NewMetricsCache(config.MetricsCacheTTL, nil), noop
}
