// Package jobs provides scheduled background tasks for the order lifecycle.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the delivery service.
//
// # Available Jobs
//
// 1. CompensationJob - Runs every second to execute pending compensation
// steps enqueued by order cancellation (refunds, coupon releases, referral
// credits, courier releases, notifications, event tracking)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(runCompensationHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The compensation job uses the cron expression "* * * * * *" which means it
// runs every second. Each run drains at most one batch of pending steps, so
// a burst of cancellations is worked off over successive runs.
//
// # Error Handling
//
// A failed step is left pending and retried on a later run; the job logs the
// batch error and keeps its schedule.
package jobs
