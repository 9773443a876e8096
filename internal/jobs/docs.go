// Package jobs provides scheduled background tasks for the order desk.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field, so schedules take
// six fields:
//
//	0 */5 * * * *   every five minutes
//
// # Available Jobs
//
// StalePendingOrdersJob reads the dashboard metrics and logs a warning while
// orders have been pending for longer than the attention age.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(cfg.StaleOrdersSchedule, metricsHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
