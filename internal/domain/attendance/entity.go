package attendance

import "time"

// Status is the closed set of attendance states. No code path writes
// StatusAbsent directly: absence is derived from the lack of a record for a
// day. The value stays in the enum because stored records from the legacy
// importer may carry it and team listings report it for missing records.
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusAbsent  Status = "absent"
)

// Valid reports whether s is one of the closed set of statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// Record is one attendance record per (user, calendar day). Date is the
// canonical YYYY-MM-DD day key derived from the server clock at the moment of
// check-in, never user-supplied. A record is created on first check-in,
// mutated in place by the matching check-out, and immutable afterwards.
type Record struct {
	ID           string
	UserID       string
	Date         string
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status
	TotalHours   *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined identity fields (manager views and export)
	UserName         *string
	UserEmployeeCode *string
	UserDepartment   *string
}
