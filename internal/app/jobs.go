package app

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/F3-Nation/slack-reminders/internal/config"
	"github.com/F3-Nation/slack-reminders/internal/database"
	"github.com/F3-Nation/slack-reminders/internal/repository"
	"github.com/F3-Nation/slack-reminders/internal/service"
	"github.com/F3-Nation/slack-reminders/internal/slack"
)

// Jobs bundles the two reminder services with the resources they share.
// The HTTP server and the one-shot CLI both build from here.
type Jobs struct {
	Backblasts *service.BackblastService
	Contacts   *service.EmergencyContactService
	Logger     *slog.Logger

	cfg config.Config
	db  *sql.DB
}

func NewJobs(ctx context.Context) (*Jobs, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.App)

	db, err := database.OpenPostgres(ctx, cfg.Settings)
	if err != nil {
		return nil, err
	}

	settingsRepo := repository.NewSettingsRepository(db)
	connector := repository.NewPaxminerConnector(cfg.Paxminer)
	openStore := func(ctx context.Context, dbName string) (service.EventStore, error) {
		return connector.Open(ctx, dbName)
	}
	newClient := slack.NewFactory()

	return &Jobs{
		Backblasts: service.NewBackblastService(settingsRepo, openStore, newClient, logger),
		Contacts:   service.NewEmergencyContactService(settingsRepo, openStore, newClient, cfg.Slack, logger),
		Logger:     logger,
		cfg:        cfg,
		db:         db,
	}, nil
}

func (j *Jobs) Config() config.Config {
	return j.cfg
}

func (j *Jobs) Close() error {
	return j.db.Close()
}
