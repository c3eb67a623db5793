package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/F3-Nation/slack-reminders/internal/domain"
)

// SettingsRepository reads region configuration from the shared
// Postgres settings store. The store is owned by another system; every
// query here is read-only and taken as a fresh snapshot at job start.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// BackblastTenants returns every region row with backblast reminder
// settings applied over defaults. Missing values scan to empty strings
// so a misconfigured region fails inside its own iteration instead of
// aborting the snapshot.
func (r *SettingsRepository) BackblastTenants(ctx context.Context) ([]domain.BackblastTenant, error) {
	const q = `
SELECT
    COALESCE(team_id, ''),
    COALESCE(workspace_name, ''),
    COALESCE(bot_token, ''),
    COALESCE(settings ->> 'paxminer_database_name', ''),
    COALESCE(settings ->> 'log_channel_id', ''),
    COALESCE(settings ->> 'reminder_backblast_grace_period_days', '2')::int,
    COALESCE(settings ->> 'reminder_backblast_max_notification_days', '75')::int,
    COALESCE(settings ->> 'reminder_backblast_notification_day_of_week', '0')::int
FROM slack_spaces
`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query backblast tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]domain.BackblastTenant, 0)
	for rows.Next() {
		var t domain.BackblastTenant
		if err := rows.Scan(
			&t.TeamID,
			&t.WorkspaceName,
			&t.BotToken,
			&t.PaxminerDatabase,
			&t.LogChannelID,
			&t.GracePeriodDays,
			&t.MaxNotificationDays,
			&t.NotificationDayOfWeek,
		); err != nil {
			return nil, fmt.Errorf("scan backblast tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backblast tenants: %w", err)
	}

	return tenants, nil
}

// ContactTenants returns regions opted into the emergency contact job.
// The filter is deliberately strict: the job runs only where the flag
// is on and every contact setting is present and correctly typed, with
// the profile field allow-listed.
func (r *SettingsRepository) ContactTenants(ctx context.Context) ([]domain.ContactTenant, error) {
	const q = `
SELECT
    team_id,
    COALESCE(workspace_name, ''),
    bot_token,
    settings ->> 'paxminer_database_name',
    COALESCE(settings ->> 'log_channel_id', ''),
    settings ->> 'reminder_emergencycontact_field',
    settings ->> 'reminder_emergencycontact_regex',
    (settings ->> 'reminder_emergencycontact_lookback_days')::numeric::int,
    (settings ->> 'reminder_emergencycontact_notification_day_of_week')::numeric::int,
    settings ->> 'reminder_emergencycontact_help_message'
FROM slack_spaces
WHERE (settings ->> 'reminder_emergencycontact_is_active')::bool
  AND team_id IS NOT NULL
  AND bot_token IS NOT NULL
  AND jsonb_typeof(settings -> 'paxminer_database_name') = 'string'
  AND jsonb_typeof(settings -> 'reminder_emergencycontact_field') = 'string'
  AND settings ->> 'reminder_emergencycontact_field' IN ('title', 'real_name', 'display_name', 'phone')
  AND jsonb_typeof(settings -> 'reminder_emergencycontact_regex') = 'string'
  AND jsonb_typeof(settings -> 'reminder_emergencycontact_lookback_days') = 'number'
  AND jsonb_typeof(settings -> 'reminder_emergencycontact_notification_day_of_week') = 'number'
  AND jsonb_typeof(settings -> 'reminder_emergencycontact_help_message') = 'string'
`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query contact tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]domain.ContactTenant, 0)
	for rows.Next() {
		var t domain.ContactTenant
		var field string
		if err := rows.Scan(
			&t.TeamID,
			&t.WorkspaceName,
			&t.BotToken,
			&t.PaxminerDatabase,
			&t.LogChannelID,
			&field,
			&t.Regex,
			&t.LookbackDays,
			&t.NotificationDayOfWeek,
			&t.HelpMessage,
		); err != nil {
			return nil, fmt.Errorf("scan contact tenant: %w", err)
		}
		t.Field = domain.ProfileField(field)
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact tenants: %w", err)
	}

	return tenants, nil
}
