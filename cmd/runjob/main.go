package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/F3-Nation/slack-reminders/internal/app"
	"github.com/F3-Nation/slack-reminders/internal/service"
)

// runjob executes one reminder job and exits, for deployments where an
// external scheduler owns the cadence.
func main() {
	cmd := "backblasts"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()

	jobs, err := app.NewJobs(ctx)
	if err != nil {
		log.Fatalf("initialize: %v", err)
	}
	defer jobs.Close()

	now := time.Now().UTC()

	var summary service.RunSummary
	switch cmd {
	case "backblasts":
		summary, err = jobs.Backblasts.Run(ctx, now)
	case "emergency-contacts":
		summary, err = jobs.Contacts.Run(ctx, now)
	default:
		log.Fatalf("unsupported job %q (use backblasts|emergency-contacts)", cmd)
	}

	if err != nil {
		log.Fatalf("job %q failed: %v", cmd, err)
	}

	fmt.Printf("job %q completed: %d regions, %d failures\n", cmd, summary.Tenants, summary.Failures)
}
