package ports

import (
	"context"

	"orderdesk/internal/core/domain/services"
)

// MetricsCache stores the latest dashboard metrics for a short time.
type MetricsCache interface {
	// Get returns the cached metrics. ok is false on a miss.
	Get(ctx context.Context) (metrics services.Metrics, ok bool, err error)

	// Set stores metrics until the cache's TTL expires.
	Set(ctx context.Context, metrics services.Metrics) error

	// Invalidate drops the cached metrics.
	Invalidate(ctx context.Context) error
}
