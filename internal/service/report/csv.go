// Package report builds flat-file exports of attendance data.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// csvHeader is the fixed export header. Consumers parse by position, so the
// column order is part of the contract.
const csvHeader = "Employee Name,Employee ID,Department,Date,Status,Check In,Check Out,Total Hours"

// AttendanceCSV serializes records to the export format: a header line plus
// one line per record, 8 comma-separated fields each. Timestamps are RFC3339
// in UTC, total hours is formatted with 2 decimals, and missing values render
// as empty fields.
func AttendanceCSV(records []attendance.Record) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, rec := range records {
		fields := []string{
			strPtrOrEmpty(rec.UserName),
			strPtrOrEmpty(rec.UserEmployeeCode),
			strPtrOrEmpty(rec.UserDepartment),
			rec.Date,
			string(rec.Status),
			timeOrEmpty(rec.CheckInTime),
			timeOrEmpty(rec.CheckOutTime),
			hoursOrEmpty(rec.TotalHours),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

func strPtrOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func hoursOrEmpty(h *float64) string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *h)
}
