package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"orderdesk/internal/core/domain/services"
)

// MetricsCache holds one metrics snapshot in process memory until its TTL
// expires. It is used when no Redis address is configured.
type MetricsCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	value   services.Metrics
	expires time.Time
	filled  bool
}

func NewMetricsCache(ttl time.Duration, now func() time.Time) *MetricsCache {
	if now == nil {
		now = time.Now
	}
	return &MetricsCache{ttl: ttl, now: now}
}

func (c *MetricsCache) Get(_ context.Context) (services.Metrics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.filled || !c.now().Before(c.expires) {
		return services.Metrics{}, false, nil
	}
	return cloneMetrics(c.value), true, nil
}

func (c *MetricsCache) Set(_ context.Context, metrics services.Metrics) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = cloneMetrics(metrics)
	c.expires = c.now().Add(c.ttl)
	c.filled = true
	return nil
}

func (c *MetricsCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filled = false
	c.value = services.Metrics{}
	return nil
}

func cloneMetrics(m services.Metrics) services.Metrics {
	m.OrdersByStatus = maps.Clone(m.OrdersByStatus)
	return m
}
