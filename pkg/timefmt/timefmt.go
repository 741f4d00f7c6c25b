// Package timefmt renders task timestamps the way the dashboard and reports show them.
package timefmt

import "time"

const (
	dateLayout     = "Jan 02, 2006"
	dateTimeLayout = "Jan 02, 2006, 03:04 PM"
)

// FormatDate renders a short date, e.g. "Mar 01, 2024".
func FormatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// FormatDateTime renders date and time, e.g. "Mar 01, 2024, 09:15 AM".
func FormatDateTime(t time.Time) string {
	return t.Local().Format(dateTimeLayout)
}

// IsToday reports whether t falls on the same calendar day as now, in now's location.
func IsToday(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

// IsOverdue reports whether t is before the start of now's day.
func IsOverdue(t, now time.Time) bool {
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return t.Before(startOfDay)
}
