package contestqueue

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"

	contestservice "github.com/runway-club/votewalk/app/modules/contest/application"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

// SweepWorker completes contests past their end date.
type SweepWorker struct {
	river.WorkerDefaults[SweepExpiredJob]
	contests contestservice.Service
	logger   *slog.Logger
}

func NewSweepWorker(contests contestservice.Service, logger *slog.Logger) *SweepWorker {
	return &SweepWorker{
		contests: contests,
		logger:   logger,
	}
}

func (w *SweepWorker) Work(ctx context.Context, job *river.Job[SweepExpiredJob]) error {
	completed, err := w.contests.CompleteExpired(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Expired contest sweep failed", attr.Error(err))
		return err
	}
	if len(completed) > 0 {
		w.logger.InfoContext(ctx, "Expired contest sweep completed contests",
			attr.Int("count", len(completed)))
	}
	return nil
}
