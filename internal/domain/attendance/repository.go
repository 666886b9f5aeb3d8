package attendance

import "context"

// Filter narrows a record listing. Date fields are day keys (YYYY-MM-DD);
// DatePrefix is a "YYYY-MM-" month prefix, equivalent to a range match since
// day keys are zero-padded and lexicographically ordered.
type Filter struct {
	UserID       *string
	Date         *string
	DatePrefix   *string
	StartDate    *string
	EndDate      *string
	Status       *Status
	EmployeeCode *string

	// JoinUser populates the record's identity fields from the owning user.
	JoinUser bool
	// SortAsc orders by date oldest first; default is newest first.
	SortAsc bool
	// Limit caps the result size when > 0.
	Limit int
}

// RecordRepository defines data access methods for attendance records.
// The store enforces the one-record-per-(user, day) invariant.
type RecordRepository interface {
	// Create creates a new attendance record. Returns ErrDuplicateRecord when
	// a record for the same (user, date) already exists.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByUserAndDate retrieves the record for a user on a given day key.
	// Returns (nil, nil) when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date string) (*Record, error)

	// Update persists check-out mutations (times, status, total hours) of an
	// existing record.
	Update(ctx context.Context, record Record) error

	// List retrieves records matching the filter.
	List(ctx context.Context, filter Filter) ([]Record, error)
}
