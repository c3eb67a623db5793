package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/F3-Nation/slack-reminders/docs/swagger"
	"github.com/F3-Nation/slack-reminders/internal/app"
)

// @title F3 Slack Reminders API
// @version 1.0
// @description Triggers the missing backblast and emergency contact reminder jobs across F3 regions.
// @BasePath /
// @schemes http https
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}
