package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/F3-Nation/slack-reminders/internal/config"
	"github.com/F3-Nation/slack-reminders/internal/service"
)

// Job is one reminder job the scheduler triggers on its cron spec.
type Job interface {
	Run(ctx context.Context, now time.Time) (service.RunSummary, error)
}

// Scheduler runs both reminder jobs on their configured daily specs.
// An alternative to the HTTP trigger for deployments without an
// external cron.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func New(cfg config.SchedulerConfig, backblasts, contacts Job, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
	}

	if _, err := s.cron.AddFunc(cfg.BackblastSpec, s.runner("backblasts", backblasts)); err != nil {
		return nil, fmt.Errorf("schedule backblast job: %w", err)
	}
	if _, err := s.cron.AddFunc(cfg.ContactSpec, s.runner("emergency_contacts", contacts)); err != nil {
		return nil, fmt.Errorf("schedule emergency contact job: %w", err)
	}

	return s, nil
}

func (s *Scheduler) runner(name string, job Job) func() {
	return func() {
		s.logger.Info("scheduled job starting", slog.String("job", name))

		summary, err := job.Run(context.Background(), time.Now().UTC())
		if err != nil {
			s.logger.Error("scheduled job failed", slog.String("job", name), slog.String("error", err.Error()))
			return
		}

		s.logger.Info("scheduled job finished",
			slog.String("job", name),
			slog.Int("tenants", summary.Tenants),
			slog.Int("failures", summary.Failures),
		)
	}
}

// Run starts the cron loop and blocks until ctx is cancelled, waiting
// for any in-flight job to finish before returning.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("scheduler started")

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
