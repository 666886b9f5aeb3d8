package dateutil

import (
	"fmt"
	"time"
)

// DayKey formats an instant as the canonical zero-padded YYYY-MM-DD
// calendar-day key used throughout attendance storage.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthStart returns midnight on the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns midnight on the last day of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// MonthPrefix returns the "YYYY-MM-" prefix shared by every day key in the
// given month. Day keys are zero-padded, so prefix matching is equivalent to
// a date-range match over the month.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}
