package jobs

import (
	"context"
	"log/slog"

	"logistics/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StatusCounter is the status statistics query.
type StatusCounter interface {
	Handle(ctx context.Context, query queries.GetStatusCountsQuery) ([]queries.StatusCount, error)
}

// StatusReportJob logs how many shipments sit in each status.
type StatusReportJob struct {
	counter  StatusCounter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStatusReportJob(counter StatusCounter, schedule string, logger *slog.Logger) *StatusReportJob {
	return &StatusReportJob{
		counter:  counter,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_report_job"),
	}
}

func (j *StatusReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status report job started", "schedule", j.schedule)
	return nil
}

func (j *StatusReportJob) run() {
	ctx := context.Background()

	counts, err := j.counter.Handle(ctx, queries.NewGetStatusCountsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Status report failed", "error", err)
		return
	}

	attrs := make([]any, 0, 2*len(counts))
	for _, sc := range counts {
		attrs = append(attrs, sc.Status, sc.Count)
	}
	j.logger.InfoContext(ctx, "Shipments by status", attrs...)
}

func (j *StatusReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status report job stopped")
}
