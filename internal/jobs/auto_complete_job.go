package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AutoCompleteJob manages the scheduled sweep of overdue handover
// confirmations. Runs every ten seconds to complete orders whose buyers let
// the confirmation deadline pass.
type AutoCompleteJob struct {
	handler commands.AutoCompleteCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAutoCompleteJob creates a new job for the deadline sweep.
// Uses AutoCompleteCommandHandler to resolve every due handover event.
func NewAutoCompleteJob(handler commands.AutoCompleteCommandHandler, logger *slog.Logger) *AutoCompleteJob {
	return &AutoCompleteJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "auto_complete_job"),
	}
}

// Start begins the sweep to run every ten seconds.
func (j *AutoCompleteJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAutoCompleteCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Lost races are filtered inside the handler; anything that
			// surfaces here is a real failure.
			j.logger.ErrorContext(ctx, "Auto-complete sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-complete job started (running every ten seconds)")
	return nil
}

// Stop stops the sweep.
func (j *AutoCompleteJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-complete job stopped")
}
