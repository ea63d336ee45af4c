// Package scheduler runs the periodic payment-due scan.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/application/dto"
)

// DueScanner is satisfied by usecase.ScanPaymentsDueUseCase.
type DueScanner interface {
	Execute(ctx context.Context, req dto.ScanPaymentsDueRequest) (dto.ScanPaymentsDueResponse, error)
}

// DueScanJob adapts a DueScanner to cron.Job. Each run gets its own
// deadline so a stuck store cannot pile up runs.
type DueScanJob struct {
	scanner DueScanner
	window  time.Duration
	timeout time.Duration
	logger  *slog.Logger
}

func NewDueScanJob(scanner DueScanner, window time.Duration, logger *slog.Logger) *DueScanJob {
	return &DueScanJob{scanner: scanner, window: window, timeout: 5 * time.Minute, logger: logger}
}

func (j *DueScanJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	// The scanner logs its own counts.
	if _, err := j.scanner.Execute(ctx, dto.ScanPaymentsDueRequest{Window: j.window}); err != nil {
		j.logger.ErrorContext(ctx, "due scan job failed", "error", err, "duration", time.Since(start))
		return
	}
	j.logger.InfoContext(ctx, "due scan job done", "duration", time.Since(start))
}

// Scheduler owns the cron runner. Overlapping runs of a job are skipped.
type Scheduler struct {
	cron *cron.Cron
}

// New registers job under a standard five-field cron expression (or a descriptor
// such as "@hourly"), evaluated in UTC.
func New(expr string, job cron.Job, logger *slog.Logger) (*Scheduler, error) {
	cl := slogAdapter{logger: logger}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddJob(expr, job); err != nil {
		return nil, fmt.Errorf("scheduler: invalid cron expression %q: %w", expr, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop prevents new runs and waits for a running job, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// slogAdapter satisfies cron.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
