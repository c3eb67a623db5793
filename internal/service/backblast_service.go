package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/F3-Nation/slack-reminders/internal/domain"
	"github.com/F3-Nation/slack-reminders/internal/reminder"
	"github.com/F3-Nation/slack-reminders/internal/slack"
)

// BackblastService runs the missing backblast job: per region, find
// events past their grace period with no recap, remind each Q daily,
// and remind site Qs and AO channels weekly on the region's trigger
// day.
type BackblastService struct {
	tenants   BackblastTenantSource
	openStore OpenEventStore
	newClient slack.Factory
	logger    *slog.Logger
}

func NewBackblastService(
	tenants BackblastTenantSource,
	openStore OpenEventStore,
	newClient slack.Factory,
	logger *slog.Logger,
) *BackblastService {
	return &BackblastService{
		tenants:   tenants,
		openStore: openStore,
		newClient: newClient,
		logger:    logger,
	}
}

// Run processes every region sequentially. Region failures are logged
// with the region's config context and swallowed; Run only errors when
// the settings snapshot itself cannot be read.
func (s *BackblastService) Run(ctx context.Context, now time.Time) (RunSummary, error) {
	tenants, err := s.tenants.BackblastTenants(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("snapshot settings: %w", err)
	}

	summary := RunSummary{Tenants: len(tenants)}
	for _, tenant := range tenants {
		outcome := s.runTenant(ctx, tenant, now)
		if outcome.Err != nil {
			summary.Failures++
			s.logger.ErrorContext(ctx, "failed to process region, moving to the next one",
				slog.String("team_id", tenant.TeamID),
				slog.String("workspace", tenant.WorkspaceName),
				slog.String("database", tenant.PaxminerDatabase),
				slog.Int("grace_period_days", tenant.GracePeriodDays),
				slog.Int("max_notification_days", tenant.MaxNotificationDays),
				slog.Int("notification_day_of_week", tenant.NotificationDayOfWeek),
				slog.String("error", outcome.Err.Error()),
			)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary, nil
}

func (s *BackblastService) runTenant(ctx context.Context, tenant domain.BackblastTenant, now time.Time) TenantOutcome {
	outcome := TenantOutcome{
		TeamID:    tenant.TeamID,
		Workspace: tenant.WorkspaceName,
		Database:  tenant.PaxminerDatabase,
	}
	fail := func(err error) TenantOutcome {
		outcome.Err = err
		return outcome
	}

	if tenant.PaxminerDatabase == "" {
		return fail(fmt.Errorf("region has no paxminer database configured"))
	}
	if tenant.BotToken == "" {
		return fail(fmt.Errorf("region has no bot token configured"))
	}

	s.logger.InfoContext(ctx, "processing region", slog.String("database", tenant.PaxminerDatabase))

	client := s.newClient(tenant.BotToken)

	store, err := s.openStore(ctx, tenant.PaxminerDatabase)
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	window := reminder.NewWindow(now, tenant.GracePeriodDays, tenant.MaxNotificationDays)
	rows, err := store.MissingBackblasts(ctx, tenant.TeamID, window)
	if err != nil {
		return fail(err)
	}
	outcome.Rows = len(rows)

	s.logger.InfoContext(ctx, "missing backblasts found",
		slog.String("database", tenant.PaxminerDatabase),
		slog.Int("count", len(rows)),
	)

	// The summary fires every run, zero included.
	if hasLogChannel(tenant.LogChannelID) {
		summary := reminder.BackblastSummary(len(rows), window.GraceDays(), window.MaxDays())
		if err := client.PostText(ctx, tenant.LogChannelID, summary); err != nil {
			return fail(err)
		}
		outcome.MessagesSent++
	}

	if len(rows) == 0 {
		return outcome
	}

	// Q reminders are personal and go out daily.
	for _, group := range reminder.GroupByLeader(rows) {
		if err := s.dispatch(ctx, client, group); err != nil {
			return fail(err)
		}
		outcome.MessagesSent++
	}

	// Site Q and AO channel reminders are broader-audience and fire
	// weekly on the region's trigger day.
	if !reminder.IsTriggerDay(now, tenant.NotificationDayOfWeek) {
		s.logger.InfoContext(ctx, "not the weekly notification day, leader reminders only",
			slog.String("database", tenant.PaxminerDatabase),
		)
		return outcome
	}

	for _, group := range reminder.GroupBySiteLeader(rows) {
		if err := s.dispatch(ctx, client, group); err != nil {
			return fail(err)
		}
		outcome.MessagesSent++
	}

	for _, group := range reminder.GroupByAOChannel(rows) {
		if err := s.dispatch(ctx, client, group); err != nil {
			return fail(err)
		}
		outcome.MessagesSent++
	}

	return outcome
}

func (s *BackblastService) dispatch(ctx context.Context, client slack.Client, group reminder.Group) error {
	fallback, blocks := reminder.ComposeBackblastReminder(group)
	if err := client.PostBlocks(ctx, group.RecipientID, fallback, blocks); err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "sent backblast reminder",
		slog.String("kind", group.Kind.String()),
		slog.String("recipient", group.RecipientID),
		slog.Int("rows", len(group.Rows)),
	)
	return nil
}
