package queries

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// GetOrderMetricsQueryHandler serves metrics from the cache when possible and
// recomputes them from every stored order otherwise.
//
// Cache failures never fail the query: a read error is treated as a miss and
// a write error is dropped.
type GetOrderMetricsQueryHandler struct {
	reader  OrderReader
	metrics services.MetricsCalculator
	cache   ports.MetricsCache
	now     func() time.Time
}

// NewGetOrderMetricsQueryHandler creates the handler. cache may be nil and
// now defaults to time.Now.
func NewGetOrderMetricsQueryHandler(
	reader OrderReader,
	metrics services.MetricsCalculator,
	cache ports.MetricsCache,
	now func() time.Time,
) GetOrderMetricsQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetOrderMetricsQueryHandler{reader: reader, metrics: metrics, cache: cache, now: now}
}

// Handle runs the query.
func (h GetOrderMetricsQueryHandler) Handle(ctx context.Context, query GetOrderMetricsQuery) (services.Metrics, error) {
	if err := query.Validate(); err != nil {
		return services.Metrics{}, err
	}

	if h.cache != nil {
		if cached, ok, err := h.cache.Get(ctx); err == nil && ok {
			return cached, nil
		}
	}

	orders, err := h.reader.Find(ctx, ports.OrderCriteria{})
	if err != nil {
		return services.Metrics{}, err
	}

	metrics, err := h.metrics.Calculate(orders, h.now())
	if err != nil {
		return services.Metrics{}, err
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, metrics)
	}

	return metrics, nil
}
