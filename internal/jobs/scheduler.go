package jobs

import (
	"context"
	"log/slog"

	portssvc "github.com/coopsoc/backoffice_app/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the interest accrual batch on a cron schedule. The job is
// safe to fire alongside the HTTP trigger: the per-account accrual-period
// marker turns a duplicate run into a no-op.
type Scheduler struct {
	cron     *cron.Cron
	interest portssvc.InterestSvc
	logger   *slog.Logger
	schedule string
}

// NewScheduler creates a scheduler for the given cron expression.
func NewScheduler(interest portssvc.InterestSvc, logger *slog.Logger, schedule string) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger))),
		interest: interest,
		logger:   logger,
		schedule: schedule,
	}
}

// Start registers the accrual job and starts the cron loop.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.schedule, s.runAccrual); err != nil {
		s.logger.Error("failed to schedule interest accrual job",
			slog.String("schedule", s.schedule), slog.String("error", err.Error()))
		return
	}
	s.logger.Info("scheduled interest accrual job", slog.String("schedule", s.schedule))
	s.cron.Start()
}

// Stop gracefully stops the cron loop, returning a context that is done when
// running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) runAccrual() {
	ctx := context.Background()
	result, err := s.interest.ApplyMonthlyInterest(ctx, "")
	if err != nil {
		s.logger.Error("interest accrual run failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("interest accrual run finished",
		slog.String("period", result.Period),
		slog.Int("applied_to", result.AppliedTo),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", len(result.Failures)))
}
