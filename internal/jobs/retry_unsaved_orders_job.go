package jobs

import (
	"context"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRetrySchedule runs the retry every 30 seconds.
const DefaultRetrySchedule = "@every 30s"

// UnsavedOrderRetrier stores orders that could not be saved at submission.
type UnsavedOrderRetrier interface {
	Handle(ctx context.Context, cmd commands.RetryUnsavedOrdersCommand) (int, error)
}

// RetryUnsavedOrdersJob drains the unsaved order queue on a cron schedule.
// It implements cron.Job.
type RetryUnsavedOrdersJob struct {
	handler   UnsavedOrderRetrier
	spec      string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRetryUnsavedOrdersJob creates the job. An empty spec means
// DefaultRetrySchedule.
func NewRetryUnsavedOrdersJob(handler UnsavedOrderRetrier, spec string, batchSize int, logger *slog.Logger) *RetryUnsavedOrdersJob {
	if spec == "" {
		spec = DefaultRetrySchedule
	}
	logger = logger.With("component", "retry_unsaved_orders_job")
	return &RetryUnsavedOrdersJob{
		handler:   handler,
		spec:      spec,
		batchSize: batchSize,
		timeout:   20 * time.Second,
		// Runs never overlap; a slow database must not pile up retries.
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
		logger: logger,
	}
}

// Run executes one retry pass.
func (j *RetryUnsavedOrdersJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewRetryUnsavedOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build retry command", "error", err)
		return
	}

	saved, err := j.handler.Handle(ctx, cmd)
	if saved > 0 {
		j.logger.InfoContext(ctx, "Saved previously unsaved orders", "count", saved)
	}
	if err != nil {
		j.logger.WarnContext(ctx, "Unsaved orders retry failed, will try again", "error", err)
	}
}

// Start schedules the job.
func (j *RetryUnsavedOrdersJob) Start() error {
	if _, err := j.cron.AddJob(j.spec, j); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unsaved orders retry job started", "schedule", j.spec)
	return nil
}

// Stop stops the schedule and waits for a running pass to finish.
func (j *RetryUnsavedOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Unsaved orders retry job stopped")
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
