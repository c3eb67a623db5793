package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	slackapi "github.com/slack-go/slack"

	"github.com/F3-Nation/slack-reminders/internal/config"
	"github.com/F3-Nation/slack-reminders/internal/domain"
	"github.com/F3-Nation/slack-reminders/internal/reminder"
	"github.com/F3-Nation/slack-reminders/internal/slack"
)

// EmergencyContactService runs the emergency contact job: on each
// region's trigger day, check the designated profile field of every
// recent attendee against the region's pattern, DM the offenders, and
// report to the log channel.
type EmergencyContactService struct {
	tenants   ContactTenantSource
	openStore OpenEventStore
	newClient slack.Factory
	policy    string
	backoff   time.Duration
	sleep     func(time.Duration)
	logger    *slog.Logger
}

func NewEmergencyContactService(
	tenants ContactTenantSource,
	openStore OpenEventStore,
	newClient slack.Factory,
	slackCfg config.SlackConfig,
	logger *slog.Logger,
) *EmergencyContactService {
	return &EmergencyContactService{
		tenants:   tenants,
		openStore: openStore,
		newClient: newClient,
		policy:    slackCfg.RateLimitPolicy,
		backoff:   slackCfg.RateLimitBackoff,
		sleep:     time.Sleep,
		logger:    logger,
	}
}

// Run processes every opted-in region sequentially, skipping regions
// whose trigger day is not today. Region failures are logged and
// swallowed, same contract as the backblast job.
func (s *EmergencyContactService) Run(ctx context.Context, now time.Time) (RunSummary, error) {
	tenants, err := s.tenants.ContactTenants(ctx)
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
				slog.String("field", string(tenant.Field)),
				slog.String("regex", tenant.Regex),
				slog.Int("lookback_days", tenant.LookbackDays),
				slog.String("error", outcome.Err.Error()),
			)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary, nil
}

func (s *EmergencyContactService) runTenant(ctx context.Context, tenant domain.ContactTenant, now time.Time) TenantOutcome {
	outcome := TenantOutcome{
		TeamID:    tenant.TeamID,
		Workspace: tenant.WorkspaceName,
		Database:  tenant.PaxminerDatabase,
	}
	fail := func(err error) TenantOutcome {
		outcome.Err = err
		return outcome
	}

	if !reminder.IsTriggerDay(now, tenant.NotificationDayOfWeek) {
		s.logger.InfoContext(ctx, "skipping region, not its notification day",
			slog.String("database", tenant.PaxminerDatabase),
		)
		outcome.Skipped = true
		return outcome
	}

	s.logger.InfoContext(ctx, "processing region", slog.String("database", tenant.PaxminerDatabase))

	pattern, err := reminder.CompileContactPattern(tenant.Regex)
	if err != nil {
		return fail(err)
	}

	client := s.newClient(tenant.BotToken)

	users, err := s.listUsers(ctx, client)
	if err != nil {
		return fail(err)
	}

	store, err := s.openStore(ctx, tenant.PaxminerDatabase)
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	recent, err := store.RecentAttendeeIDs(ctx, now.AddDate(0, 0, -tenant.LookbackDays))
	if err != nil {
		return fail(err)
	}

	offenders := reminder.Offenders(users, recent, tenant.Field, pattern)
	outcome.Rows = len(offenders)

	s.logger.InfoContext(ctx, "compliance computed",
		slog.String("database", tenant.PaxminerDatabase),
		slog.Int("recent_attendees", len(recent)),
		slog.Int("offenders", len(offenders)),
	)

	fallback, blocks := reminder.ComposeContactReminder(tenant.HelpMessage)
	for _, userID := range offenders {
		if err := client.PostDirectMessage(ctx, userID, fallback, blocks); err != nil {
			return fail(err)
		}
		outcome.MessagesSent++
		s.logger.DebugContext(ctx, "sent emergency contact reminder", slog.String("user", userID))
	}

	if hasLogChannel(tenant.LogChannelID) {
		text := reminder.ContactAllClear()
		if len(offenders) > 0 {
			text = reminder.ContactRoster(offenders)
		}
		if err := client.PostText(ctx, tenant.LogChannelID, text); err != nil {
			return fail(err)
		}
		outcome.MessagesSent++
	}

	return outcome
}

// listUsers fetches the workspace directory, applying the configured
// rate-limit policy: back off once, then either fail the region (the
// historical behavior) or retry the call once.
func (s *EmergencyContactService) listUsers(ctx context.Context, client slack.Client) ([]slackapi.User, error) {
	users, err := client.ListUsers(ctx)
	if err == nil {
		return users, nil
	}

	if _, ok := slack.RetryAfter(err); !ok {
		return nil, err
	}

	s.logger.WarnContext(ctx, "rate limited by slack, backing off",
		slog.Duration("backoff", s.backoff),
		slog.String("policy", s.policy),
	)
	s.sleep(s.backoff)

	if s.policy == config.RateLimitRetry {
		return client.ListUsers(ctx)
	}
	return nil, err
}
