// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the fulfillment service.
//
// # Available Jobs
//
// 1. AutoCompleteJob - Runs every ten seconds to complete orders whose
// handover confirmation deadline expired without a buyer decision
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(autoCompleteHandler, logger)
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
// The sweep uses the cron expression "*/10 * * * * *", so an overdue
// confirmation is resolved at most ten seconds after its deadline. Deadlines
// themselves are hours long, so the extra latency is invisible to users.
//
// # Error Handling
//
// The sweep treats races it loses against concurrent buyer actions as normal
// and skips those events silently; only unexpected failures are logged.
package jobs
