package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/F3-Nation/slack-reminders/internal/config"
	apphttp "github.com/F3-Nation/slack-reminders/internal/http"
	"github.com/F3-Nation/slack-reminders/internal/http/handlers"
	"github.com/F3-Nation/slack-reminders/internal/scheduler"
)

type App struct {
	cfg       config.Config
	logger    *slog.Logger
	jobs      *Jobs
	httpSrv   *http.Server
	scheduler *scheduler.Scheduler
}

func New(ctx context.Context) (*App, error) {
	jobs, err := NewJobs(ctx)
	if err != nil {
		return nil, err
	}

	cfg := jobs.Config()
	logger := jobs.Logger

	healthHandler := handlers.NewHealthHandler()
	jobHandler := handlers.NewJobHandler(jobs.Backblasts, jobs.Contacts, logger)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		Logger:        logger,
		HealthHandler: healthHandler,
		JobHandler:    jobHandler,
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, jobs.Backblasts, jobs.Contacts, logger)
		if err != nil {
			_ = jobs.Close()
			return nil, err
		}
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		jobs:      jobs,
		httpSrv:   httpSrv,
		scheduler: sched,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.scheduler != nil {
		go a.scheduler.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", slog.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return a.shutdown(context.Background())
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return a.shutdown(context.Background())
		}
		_ = a.shutdown(context.Background())
		return err
	}
}

func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := a.jobs.Close(); err != nil {
		return fmt.Errorf("close settings store: %w", err)
	}

	return nil
}
