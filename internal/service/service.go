package service

import (
	"context"
	"strings"
	"time"

	"github.com/F3-Nation/slack-reminders/internal/domain"
	"github.com/F3-Nation/slack-reminders/internal/reminder"
)

// TenantOutcome records one region's processing result. A region
// failure is carried here instead of aborting the run; the orchestrator
// logs it and moves on.
type TenantOutcome struct {
	TeamID       string
	Workspace    string
	Database     string
	Rows         int
	MessagesSent int
	Skipped      bool
	Err          error
}

// RunSummary aggregates a whole job run. Failures counts regions whose
// processing errored; the run itself still reports success.
type RunSummary struct {
	Tenants  int
	Failures int
	Outcomes []TenantOutcome
}

// BackblastTenantSource yields the settings snapshot for the backblast
// job.
type BackblastTenantSource interface {
	BackblastTenants(ctx context.Context) ([]domain.BackblastTenant, error)
}

// ContactTenantSource yields the settings snapshot for the emergency
// contact job.
type ContactTenantSource interface {
	ContactTenants(ctx context.Context) ([]domain.ContactTenant, error)
}

// EventStore is one region's operational database.
type EventStore interface {
	MissingBackblasts(ctx context.Context, teamID string, w reminder.Window) ([]domain.MissingBackblast, error)
	RecentAttendeeIDs(ctx context.Context, since time.Time) (map[string]struct{}, error)
	Close() error
}

// OpenEventStore opens a region's event store by database name. The
// caller closes it before moving to the next region.
type OpenEventStore func(ctx context.Context, dbName string) (EventStore, error)

// hasLogChannel mirrors the settings convention that blank or
// whitespace-only log channel IDs mean "no log channel".
func hasLogChannel(id string) bool {
	return strings.TrimSpace(id) != ""
}
