package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// RevocationPurger drops revocations of tokens that have expired by now.
type RevocationPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

// RevocationPurgeJob keeps the in-memory revocation set bounded.
type RevocationPurgeJob struct {
	purger   RevocationPurger
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRevocationPurgeJob(
	purger RevocationPurger,
	schedule string,
	now func() time.Time,
	logger *slog.Logger,
) *RevocationPurgeJob {
	return &RevocationPurgeJob{
		purger:   purger,
		schedule: schedule,
		now:      now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "revocation_purge_job"),
	}
}

// Start registers the purge on the job's schedule and starts the scheduler.
func (j *RevocationPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Revocation purge job started", "schedule", j.schedule)
	return nil
}

func (j *RevocationPurgeJob) run() {
	ctx := context.Background()

	removed, err := j.purger.PurgeExpired(ctx, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Revocation purge failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Purged expired revocations", "removed", removed)
	}
}

// Stop waits for a running purge to finish.
func (j *RevocationPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Revocation purge job stopped")
}
