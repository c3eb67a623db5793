package reminder

import "time"

// MondayIndexedWeekday converts Go's Sunday=0 weekday to the Monday=0
// convention the settings store uses for notification_day_of_week.
func MondayIndexedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// IsTriggerDay reports whether t falls on the region's weekly trigger
// day. Site-leader and AO-channel reminders only fire on this day;
// leader reminders ignore it.
func IsTriggerDay(t time.Time, dayOfWeek int) bool {
	return MondayIndexedWeekday(t) == dayOfWeek
}
