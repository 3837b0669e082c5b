package jobs

import (
	"context"
	"log/slog"

	"fueldrop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CompensationJob drains the compensation step queue on a schedule.
// Runs every second so cancelled orders are unwound promptly; each run
// processes at most one batch of pending steps.
type CompensationJob struct {
	handler commands.RunCompensationCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCompensationJob creates a new job that executes pending compensation
// steps through RunCompensationCommandHandler.
func NewCompensationJob(handler commands.RunCompensationCommandHandler, logger *slog.Logger) *CompensationJob {
	return &CompensationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "compensation_job"),
	}
}

// Start begins the compensation job to run every second.
func (j *CompensationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if runErr := j.runOnce(ctx); runErr != nil {
			j.logger.ErrorContext(ctx, "Compensation job failed", "error", runErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Compensation job started (running every second)")
	return nil
}

// runOnce executes a single drain pass over the compensation queue.
func (j *CompensationJob) runOnce(ctx context.Context) error {
	cmd := commands.NewRunCompensationCommand()
	return j.handler.Handle(ctx, cmd)
}

// Stop stops the compensation job.
func (j *CompensationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Compensation job stopped")
}
