package jobs

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultCountdownSchedule advances countdowns once a minute, the unit of
// an order's processing time.
const DefaultCountdownSchedule = "@every 1m"

// countdownAdvancer is satisfied by commands.AdvanceCountdownsCommandHandler.
type countdownAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceCountdownsCommand) (commands.AdvanceCountdownsResult, error)
}

// CountdownJob ticks every processing order on a cron schedule.
// A run that is still busy when the next one is due makes that one skip.
type CountdownJob struct {
	handler  countdownAdvancer
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCountdownJob creates the job. An empty schedule means DefaultCountdownSchedule.
func NewCountdownJob(handler countdownAdvancer, schedule string, logger *slog.Logger) *CountdownJob {
	if schedule == "" {
		schedule = DefaultCountdownSchedule
	}
	logger = logger.With("component", "countdown_job")

	return &CountdownJob{
		handler:  handler,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		logger:   logger,
	}
}

// Start registers the schedule and starts the scheduler.
func (j *CountdownJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Countdown job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs one sweep. Failures are logged; the next sweep retries.
func (j *CountdownJob) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	result, err := j.handler.Handle(ctx, commands.NewAdvanceCountdownsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Countdown sweep failed", "error", err)
		return
	}

	if result.Ticked > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Countdown sweep finished",
			"ticked", result.Ticked,
			"completed", result.Completed,
			"failed", result.Failed,
		)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *CountdownJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Countdown job stopped")
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
