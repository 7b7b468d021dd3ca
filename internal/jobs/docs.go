// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds first).
//
// # Available Jobs
//
// 1. RevocationPurgeJob - drops logged-out tokens whose expiry has passed from the
// in-memory revocation set. Not scheduled for the redis backend, which expires keys itself.
// 2. StatusReportJob - logs the number of shipments per status.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.Schedules{
//		RevocationPurge: "0 */5 * * * *",
//	}, memoryStore, statusCounts, time.Now, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
