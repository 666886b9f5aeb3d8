package attendance

import "context"

// AttendanceService defines business logic for attendance operations. The
// caller identity is taken from the JWT claims in the request context.
type AttendanceService interface {
	// CheckIn records the start of the caller's work day. Fails with
	// ErrAlreadyCheckedIn when a check-in already exists for today.
	CheckIn(ctx context.Context) (RecordResponse, error)

	// CheckOut records the end of the caller's work day and computes total
	// hours. Fails with ErrNotCheckedIn or ErrAlreadyCheckedOut.
	CheckOut(ctx context.Context) (RecordResponse, error)

	// GetMyHistory retrieves the caller's records, optionally narrowed to a
	// month, newest first.
	GetMyHistory(ctx context.Context, filter MonthFilter) ([]RecordResponse, error)

	// GetMySummary tallies the caller's records for a month (defaults to the
	// current month).
	GetMySummary(ctx context.Context, filter MonthFilter) (MonthlySummaryResponse, error)

	// GetMyTodayStatus reports the caller's state for today.
	GetMyTodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// ListAttendance retrieves records with identity fields for managers.
	ListAttendance(ctx context.Context, filter ListFilter) ([]RecordResponse, error)

	// GetEmployeeAttendance retrieves one employee's records, optionally
	// bounded by a date range, newest first.
	GetEmployeeAttendance(ctx context.Context, userID string, filter RangeFilter) ([]RecordResponse, error)

	// GetTeamSummary tallies today's stored records per status.
	GetTeamSummary(ctx context.Context) (TeamSummaryResponse, error)

	// GetTodayTeamStatus reports every employee's status for today, absent
	// when no record exists.
	GetTodayTeamStatus(ctx context.Context) ([]TeamMemberStatus, error)

	// ExportCSV serializes matching records with identity fields to CSV.
	ExportCSV(ctx context.Context, filter ExportFilter) ([]byte, error)
}
