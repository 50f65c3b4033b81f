// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs run on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RetryUnsavedOrdersJob stores orders that were handed off to the merchant
// but could not be saved at submission time. It runs every 30 seconds by
// default and never overlaps with itself.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewRetryUnsavedOrdersJob(retryHandler, "@every 30s", 50, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged as a warning and retried on the next tick; orders
// that still cannot be stored stay in the queue.
package jobs
