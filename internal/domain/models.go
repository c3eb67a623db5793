package domain

import "time"

// ProfileField names the Slack profile field a region checks for
// emergency contact info. Only these four are accepted by the settings
// store.
type ProfileField string

const (
	FieldTitle       ProfileField = "title"
	FieldRealName    ProfileField = "real_name"
	FieldDisplayName ProfileField = "display_name"
	FieldPhone       ProfileField = "phone"
)

// BackblastTenant is one region's configuration for the missing
// backblast job, snapshotted from the settings store at job start.
type BackblastTenant struct {
	TeamID                string
	WorkspaceName         string
	BotToken              string
	PaxminerDatabase      string
	LogChannelID          string
	GracePeriodDays       int
	MaxNotificationDays   int
	NotificationDayOfWeek int // Monday is 0, matching the settings store
}

// ContactTenant is one region's configuration for the emergency contact
// job. Only regions that pass the settings store's strict validation
// query appear as ContactTenants.
type ContactTenant struct {
	TeamID                string
	WorkspaceName         string
	BotToken              string
	PaxminerDatabase      string
	LogChannelID          string
	Field                 ProfileField
	Regex                 string
	LookbackDays          int
	NotificationDayOfWeek int
	HelpMessage           string
}

// MissingBackblast is one scheduled event with no recap on record,
// inside the region's notification window.
type MissingBackblast struct {
	Date         time.Time // event date; time-of-day is always midnight
	StartTime    string    // store-native start time, e.g. "0530"
	DayAbbrev    string    // three-letter weekday from the schedule master
	EventType    string
	LeaderID     string // empty when no Q was assigned
	AOChannelID  string
	SiteLeaderID string // empty when the AO has no site Q
}

// HasLeader reports whether a Q was assigned to the event. Rows without
// a leader are excluded from leader reminders but still reach the AO
// channel reminder.
func (m MissingBackblast) HasLeader() bool {
	return m.LeaderID != ""
}

// HasSiteLeader reports whether the event's AO has a site Q on record.
func (m MissingBackblast) HasSiteLeader() bool {
	return m.SiteLeaderID != ""
}
