package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules holds six-field cron expressions (with seconds). An empty schedule
// disables its job.
type Schedules struct {
	RevocationPurge string
	StatusReport    string
}

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops every scheduled job.
type JobManager struct {
	jobs   []namedJob
	logger *slog.Logger
}

type namedJob struct {
	name string
	job  job
}

// NewJobManager wires the enabled jobs. purger may be nil when the revocation
// backend expires entries on its own.
func NewJobManager(
	schedules Schedules,
	purger RevocationPurger,
	counter StatusCounter,
	now func() time.Time,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{logger: logger}

	if purger != nil && schedules.RevocationPurge != "" {
		jm.jobs = append(jm.jobs, namedJob{
			name: "revocation purge",
			job:  NewRevocationPurgeJob(purger, schedules.RevocationPurge, now, logger),
		})
	}
	if counter != nil && schedules.StatusReport != "" {
		jm.jobs = append(jm.jobs, namedJob{
			name: "status report",
			job:  NewStatusReportJob(counter, schedules.StatusReport, logger),
		})
	}

	return jm
}

// StartAll starts every job. When one fails, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, nj := range jm.jobs {
		nj.job.Stop()
	}
}

// Len reports how many jobs are enabled.
func (jm *JobManager) Len() int {
	return len(jm.jobs)
}
