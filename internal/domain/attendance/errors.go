package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out state conflicts
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("you must check in before checking out")
	ErrAlreadyCheckedOut = errors.New("already checked out today")

	// General errors
	ErrDuplicateRecord = errors.New("attendance record already exists for this day")
	ErrRecordNotFound  = errors.New("attendance record not found")
)
