// Package jobs provides scheduled background tasks for the restaurant service.
//
// Jobs are built on github.com/robfig/cron/v3 and only ever call command
// handlers; they hold no state of their own.
//
// # Available Jobs
//
// CountdownJob runs AdvanceCountdownsCommandHandler on TICK_SCHEDULE (default
// "@every 1m"). Each sweep decrements the remaining time of every processing
// order and completes those that reach zero, releasing their table and chef.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(advanceCountdownsHandler, cfg.TickSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next schedule. A sweep still
// running when the next is due causes that one to be skipped, so sweeps never
// overlap.
package jobs
