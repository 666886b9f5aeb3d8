package attendance

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// Sentinel statuses reported for days without a stored record. Two different
// labels exist in the wire contract: the attendance "today" endpoint reports
// not_marked while the employee dashboard reports not_checked_in. Consumers
// depend on each literal, so they are not unified.
const (
	SentinelNotMarked    = "not_marked"
	SentinelNotCheckedIn = "not_checked_in"
)

// RecordResponse is the JSON projection of a Record. Timestamps are RFC3339.
type RecordResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	Date         string   `json:"date"`
	CheckInTime  *string  `json:"checkInTime"`
	CheckOutTime *string  `json:"checkOutTime"`
	Status       Status   `json:"status"`
	TotalHours   *float64 `json:"totalHours"`

	Name         *string `json:"name,omitempty"`
	EmployeeCode *string `json:"employeeId,omitempty"`
	Department   *string `json:"department,omitempty"`
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

// ToResponse converts a Record to its JSON projection.
func (r Record) ToResponse() RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Date:         r.Date,
		CheckInTime:  timePtrToString(r.CheckInTime),
		CheckOutTime: timePtrToString(r.CheckOutTime),
		Status:       r.Status,
		TotalHours:   r.TotalHours,
		Name:         r.UserName,
		EmployeeCode: r.UserEmployeeCode,
		Department:   r.UserDepartment,
	}
}

// MonthFilter selects a calendar month. Each zero half defaults
// independently to the current month or year; both zero means "current
// month" for the summary endpoint and "no month filter" for the history
// endpoint.
type MonthFilter struct {
	Month int
	Year  int
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year != 0 && (f.Year < 2000 || f.Year > 2100) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter carries the manager listing query parameters.
type ListFilter struct {
	Date         string
	EmployeeCode string
	Status       string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Date != "" {
		if _, ok := validator.IsValidDate(f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.Status != "" && !Status(f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, half-day, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RangeFilter carries an optional inclusive date range. Both bounds must be
// given together.
type RangeFilter struct {
	StartDate string
	EndDate   string
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if (f.StartDate == "") != (f.EndDate == "") {
		errs = append(errs, validator.ValidationError{
			Field:   "startDate",
			Message: "startDate and endDate must be provided together",
		})
	}
	if f.StartDate != "" && f.EndDate != "" {
		start, okStart := validator.IsValidDate(f.StartDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
		end, okEnd := validator.IsValidDate(f.EndDate)
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must not be before startDate",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFilter carries the CSV export query parameters.
type ExportFilter struct {
	RangeFilter
	EmployeeCode string
}

// MonthlySummaryResponse tallies one user's records for a month. TotalHours
// is rounded to 2 decimals on the sum, not per record.
type MonthlySummaryResponse struct {
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	HalfDay    int     `json:"halfDay"`
	TotalHours float64 `json:"totalHours"`
}

// TodayStatusResponse reports a user's own state for the current day. Status
// is SentinelNotMarked when no record exists yet.
type TodayStatusResponse struct {
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	CheckedIn  bool            `json:"checkedIn"`
	CheckedOut bool            `json:"checkedOut"`
	Record     *RecordResponse `json:"record,omitempty"`
}

// TeamSummaryResponse tallies today's stored records across the team.
type TeamSummaryResponse struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
	HalfDay int    `json:"halfDay"`
}

// TeamMemberStatus is one row of the team-wide today listing. Employees with
// no record today are reported as absent.
type TeamMemberStatus struct {
	EmployeeCode string `json:"employeeId"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Status       Status `json:"status"`
}
