// Package redis caches dashboard metrics in Redis so that several order desk
// instances share one snapshot.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const metricsOperation = "metrics"

// MetricsCache implements ports.MetricsCache on a Redis string key with a TTL.
type MetricsCache struct {
	client      *redis.Client
	serviceName string
	ttl         time.Duration
	logger      *zap.Logger
}

func NewMetricsCache(client *redis.Client, serviceName string, ttl time.Duration, logger *zap.Logger) *MetricsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsCache{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
		logger:      logger,
	}
}

type metricsDTO struct {
	TotalOrders        int            `json:"totalOrders"`
	TotalRevenue       int64          `json:"totalRevenue"`
	AverageOrderValue  int64          `json:"averageOrderValue"`
	OrdersByStatus     map[string]int `json:"ordersByStatus"`
	RequiringAttention int            `json:"requiringAttention"`
}

func (c *MetricsCache) Get(ctx context.Context) (services.Metrics, bool, error) {
	raw, err := c.client.Get(ctx, c.key()).Result()
	if errors.Is(err, redis.Nil) {
		return services.Metrics{}, false, nil
	}
	if err != nil {
		c.logger.Warn("metrics cache read failed", zap.Error(err))
		return services.Metrics{}, false, err
	}

	var dto metricsDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		c.logger.Warn("metrics cache entry is corrupt", zap.Error(err))
		return services.Metrics{}, false, fmt.Errorf("decode cached metrics: %w", err)
	}

	byStatus := make(map[order.Status]int, len(dto.OrdersByStatus))
	for s, n := range dto.OrdersByStatus {
		byStatus[order.Status(s)] = n
	}
	return services.Metrics{
		TotalOrders:        dto.TotalOrders,
		TotalRevenue:       kernel.Cents(dto.TotalRevenue),
		AverageOrderValue:  kernel.Cents(dto.AverageOrderValue),
		OrdersByStatus:     byStatus,
		RequiringAttention: dto.RequiringAttention,
	}, true, nil
}

func (c *MetricsCache) Set(ctx context.Context, metrics services.Metrics) error {
	byStatus := make(map[string]int, len(metrics.OrdersByStatus))
	for s, n := range metrics.OrdersByStatus {
		byStatus[s.String()] = n
	}
	payload, err := json.Marshal(metricsDTO{
		TotalOrders:        metrics.TotalOrders,
		TotalRevenue:       int64(metrics.TotalRevenue),
		AverageOrderValue:  int64(metrics.AverageOrderValue),
		OrdersByStatus:     byStatus,
		RequiringAttention: metrics.RequiringAttention,
	})
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, c.key(), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("metrics cache write failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *MetricsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key()).Err(); err != nil {
		c.logger.Warn("metrics cache invalidation failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *MetricsCache) key() string {
	return fmt.Sprintf("%s:%s", c.serviceName, metricsOperation)
}
