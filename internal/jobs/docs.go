// Package jobs provides scheduled background tasks for the shipment engine.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(stalePendingHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StalePendingJob runs hourly and logs every shipment that has been waiting
// for receiver review longer than the configured threshold. It is a read-only
// sweep; shipment state only changes through the command handlers.
package jobs
