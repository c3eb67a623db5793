package app

import (
	"log/slog"
	"os"
	"strings"

	"github.com/F3-Nation/slack-reminders/internal/config"
)

func newLogger(cfg config.AppConfig) *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(cfg.Environment, "development") {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("app", cfg.Name))
}
