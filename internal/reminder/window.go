package reminder

import "time"

// Window is the age interval inside which a missing backblast is worth
// flagging: at least GracePeriodDays old, strictly younger than
// MaxNotificationDays. The interval is half-open: an event exactly at
// the grace boundary is included, one exactly at the cutoff is not.
type Window struct {
	today time.Time
	grace int
	max   int
}

func NewWindow(today time.Time, graceDays, maxDays int) Window {
	return Window{today: dateOnly(today), grace: graceDays, max: maxDays}
}

// Contains reports whether eventDate falls inside the window.
func (w Window) Contains(eventDate time.Time) bool {
	age := int(w.today.Sub(dateOnly(eventDate)).Hours() / 24)
	return age >= w.grace && age < w.max
}

// Bounds returns the SQL parameters for the window: rows qualify when
// event_date > oldest AND event_date <= newest.
func (w Window) Bounds() (oldest, newest time.Time) {
	return w.today.AddDate(0, 0, -w.max), w.today.AddDate(0, 0, -w.grace)
}

func (w Window) GraceDays() int { return w.grace }

func (w Window) MaxDays() int { return w.max }

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
