package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/F3-Nation/slack-reminders/internal/config"
	"github.com/F3-Nation/slack-reminders/internal/database"
	"github.com/F3-Nation/slack-reminders/internal/domain"
	"github.com/F3-Nation/slack-reminders/internal/reminder"
)

// PaxminerConnector opens per-region PAXminer repositories. Each region
// names its own database, so unlike the settings store there is no
// shared pool; the connection lives only for that region's iteration.
type PaxminerConnector struct {
	cfg config.PaxminerConfig
}

func NewPaxminerConnector(cfg config.PaxminerConfig) *PaxminerConnector {
	return &PaxminerConnector{cfg: cfg}
}

func (c *PaxminerConnector) Open(ctx context.Context, dbName string) (*PaxminerRepository, error) {
	if !database.ValidDatabaseName(c.cfg.ScheduleDatabase) {
		return nil, fmt.Errorf("invalid schedule database name %q", c.cfg.ScheduleDatabase)
	}

	db, err := database.OpenPaxminer(ctx, c.cfg, dbName)
	if err != nil {
		return nil, err
	}

	return &PaxminerRepository{
		db:         db,
		scheduleDB: database.QuoteIdentifier(c.cfg.ScheduleDatabase),
		regionDB:   database.QuoteIdentifier(dbName),
	}, nil
}

// PaxminerRepository queries one region's operational database: the
// shared schedule master for signups and the region's own beatdowns and
// attendance tables.
type PaxminerRepository struct {
	db         *sql.DB
	scheduleDB string // quoted identifier
	regionDB   string // quoted identifier
}

func (r *PaxminerRepository) Close() error {
	return r.db.Close()
}

// MissingBackblasts returns scheduled events inside the notification
// window with no matching beatdown record, ordered by event date then
// start time. Absent leader and site-leader IDs normalize to empty
// strings here, at the store boundary.
func (r *PaxminerRepository) MissingBackblasts(ctx context.Context, teamID string, w reminder.Window) ([]domain.MissingBackblast, error) {
	// Identifiers are allow-listed and quoted by the connector; the
	// remaining inputs are bound parameters.
	q := fmt.Sprintf(`
SELECT
    qmbd.event_date,
    qmbd.event_time,
    LEFT(qmbd.event_day_of_week, 3),
    qmbd.event_type,
    COALESCE(qmbd.q_pax_id, ''),
    qmbd.ao_channel_id,
    COALESCE(aos.site_q_user_id, '')
FROM (
    SELECT *
    FROM %s.qsignups_master qm
    WHERE NOT EXISTS (
        SELECT 1
        FROM %s.beatdowns bd
        WHERE qm.ao_channel_id = bd.ao_id
          AND qm.event_date = bd.bd_date
    )
      AND qm.team_id = ?
      AND qm.event_date > ?
      AND qm.event_date <= ?
) qmbd
LEFT JOIN %s.aos aos ON qmbd.ao_channel_id = aos.channel_id
ORDER BY qmbd.event_date, qmbd.event_time
`, r.scheduleDB, r.regionDB, r.regionDB)

	oldest, newest := w.Bounds()

	rows, err := r.db.QueryContext(ctx, q, teamID, oldest, newest)
	if err != nil {
		return nil, fmt.Errorf("query missing backblasts: %w", err)
	}
	defer rows.Close()

	missing := make([]domain.MissingBackblast, 0)
	for rows.Next() {
		var m domain.MissingBackblast
		if err := rows.Scan(
			&m.Date,
			&m.StartTime,
			&m.DayAbbrev,
			&m.EventType,
			&m.LeaderID,
			&m.AOChannelID,
			&m.SiteLeaderID,
		); err != nil {
			return nil, fmt.Errorf("scan missing backblast: %w", err)
		}
		missing = append(missing, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missing backblasts: %w", err)
	}

	return missing, nil
}

// RecentAttendeeIDs returns the distinct user IDs with an attendance
// record after since.
func (r *PaxminerRepository) RecentAttendeeIDs(ctx context.Context, since time.Time) (map[string]struct{}, error) {
	q := fmt.Sprintf("SELECT DISTINCT user_id FROM %s.bd_attendance ba WHERE ba.`date` > ?", r.regionDB)

	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, fmt.Errorf("query recent attendees: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan attendee id: %w", err)
		}
		ids[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent attendees: %w", err)
	}

	return ids, nil
}
