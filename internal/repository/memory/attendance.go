package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

type RecordRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Record // keyed by ID

	// users resolves joined identity fields, matching the SQL LEFT JOIN.
	users *UserRepository
}

func NewRecordRepository(users *UserRepository) *RecordRepository {
	return &RecordRepository{
		records: make(map[string]attendance.Record),
		users:   users,
	}
}

func (r *RecordRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.UserID == record.UserID && existing.Date == record.Date {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = record

	return record, nil
}

func (r *RecordRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.UserID == userID && rec.Date == date {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (r *RecordRepository) Update(ctx context.Context, record attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}

	existing.CheckInTime = record.CheckInTime
	existing.CheckOutTime = record.CheckOutTime
	existing.Status = record.Status
	existing.TotalHours = record.TotalHours
	existing.UpdatedAt = time.Now()
	r.records[record.ID] = existing

	return nil
}

func (r *RecordRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []attendance.Record
	for _, rec := range r.records {
		if !r.matches(ctx, rec, filter) {
			continue
		}
		if filter.JoinUser {
			r.joinUser(ctx, &rec)
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			if filter.SortAsc {
				return records[i].Date < records[j].Date
			}
			return records[i].Date > records[j].Date
		}
		if filter.SortAsc {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}

	return records, nil
}

func (r *RecordRepository) matches(ctx context.Context, rec attendance.Record, filter attendance.Filter) bool {
	if filter.UserID != nil && *filter.UserID != "" && rec.UserID != *filter.UserID {
		return false
	}
	if filter.Date != nil && *filter.Date != "" && rec.Date != *filter.Date {
		return false
	}
	if filter.DatePrefix != nil && *filter.DatePrefix != "" && !strings.HasPrefix(rec.Date, *filter.DatePrefix) {
		return false
	}
	if filter.StartDate != nil && *filter.StartDate != "" && rec.Date < *filter.StartDate {
		return false
	}
	if filter.EndDate != nil && *filter.EndDate != "" && rec.Date > *filter.EndDate {
		return false
	}
	if filter.Status != nil && *filter.Status != "" && rec.Status != *filter.Status {
		return false
	}
	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		u, err := r.users.GetByID(ctx, rec.UserID)
		if err != nil || u.EmployeeCode != *filter.EmployeeCode {
			return false
		}
	}
	return true
}

func (r *RecordRepository) joinUser(ctx context.Context, rec *attendance.Record) {
	u, err := r.users.GetByID(ctx, rec.UserID)
	if err != nil {
		return
	}
	rec.UserName = &u.Name
	rec.UserEmployeeCode = &u.EmployeeCode
	rec.UserDepartment = &u.Department
}
