package jobs

import (
	"context"
	"time"

	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultStaleOrdersSchedule runs the stale order check every five minutes.
const DefaultStaleOrdersSchedule = "0 */5 * * * *"

const staleCheckTimeout = 30 * time.Second

// MetricsHandler computes the dashboard metrics.
type MetricsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderMetricsQuery) (services.Metrics, error)
}

// StalePendingOrdersJob warns about pending orders that need attention.
type StalePendingOrdersJob struct {
	schedule string
	handler  MetricsHandler
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewStalePendingOrdersJob creates the job. An empty schedule uses
// DefaultStaleOrdersSchedule.
func NewStalePendingOrdersJob(schedule string, handler MetricsHandler, logger *zap.Logger) *StalePendingOrdersJob {
	if schedule == "" {
		schedule = DefaultStaleOrdersSchedule
	}
	return &StalePendingOrdersJob{
		schedule: schedule,
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.Named("stale_pending_orders_job"),
	}
}

// Start schedules the job. It fails on a malformed schedule.
func (j *StalePendingOrdersJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), staleCheckTimeout)
		defer cancel()
		j.run(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Stale pending orders job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (j *StalePendingOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Stale pending orders job stopped")
}

func (j *StalePendingOrdersJob) run(ctx context.Context) {
	metrics, err := j.handler.Handle(ctx, queries.NewGetOrderMetricsQuery())
	if err != nil {
		j.logger.Error("Stale pending orders check failed", zap.Error(err))
		return
	}

	if metrics.RequiringAttention == 0 {
		j.logger.Debug("No stale pending orders")
		return
	}
	j.logger.Warn("Orders are waiting in pending",
		zap.Int("requiringAttention", metrics.RequiringAttention),
		zap.Int("totalOrders", metrics.TotalOrders))
}
