package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/dateutil"
	"github.com/attendly/attendance-backend-go/internal/service/report"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

// Work days shorter than this count as half-day.
const halfDayThresholdHours = 4.0

type AttendanceServiceImpl struct {
	recordRepo attendance.RecordRepository
	userRepo   user.UserRepository

	loc          *time.Location
	cutoffHour   int
	cutoffMinute int

	// now is swapped out by tests
	now func() time.Time
}

func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	userRepo user.UserRepository,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}

	cutoff, err := time.Parse("15:04", cfg.LateCutoff)
	if err != nil {
		cutoff = time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC)
	}

	return &AttendanceServiceImpl{
		recordRepo:   recordRepo,
		userRepo:     userRepo,
		loc:          loc,
		cutoffHour:   cutoff.Hour(),
		cutoffMinute: cutoff.Minute(),
		now:          time.Now,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// round2 rounds to 2 decimal places, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// fillMonthFilter defaults each missing half of the filter to the current
// month or year independently, so a month-only query targets this year.
func (s *AttendanceServiceImpl) fillMonthFilter(filter attendance.MonthFilter) (month, year int) {
	month, year = filter.Month, filter.Year
	now := s.now().In(s.loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

// checkInStatus classifies a check-in instant against the cutoff on the same
// day. Late means strictly after HH:MM:00.000; the cutoff second itself is
// still present, one millisecond past it is late.
func (s *AttendanceServiceImpl) checkInStatus(t time.Time) attendance.Status {
	cutoff := time.Date(t.Year(), t.Month(), t.Day(), s.cutoffHour, s.cutoffMinute, 0, 0, t.Location())
	if t.After(cutoff) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.loc)
	today := dateutil.DayKey(now)

	existing, err := s.recordRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's record: %w", err)
	}

	if existing != nil {
		if existing.CheckInTime != nil {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		// Record exists without a check-in (legacy import), repair it in place
		existing.CheckInTime = &now
		existing.Status = s.checkInStatus(now)
		if err := s.recordRepo.Update(ctx, *existing); err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to update record: %w", err)
		}
		return existing.ToResponse(), nil
	}

	record, err := s.recordRepo.Create(ctx, attendance.Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        today,
		CheckInTime: &now,
		Status:      s.checkInStatus(now),
	})
	if err != nil {
		// Concurrent check-in lost the race on the unique constraint
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.RecordResponse{}, err
	}

	return record.ToResponse(), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().In(s.loc)
	today := dateutil.DayKey(now)

	record, err := s.recordRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's record: %w", err)
	}
	if record == nil || record.CheckInTime == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOutTime != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	total := round2(now.Sub(*record.CheckInTime).Hours())

	record.CheckOutTime = &now
	record.TotalHours = &total
	// A short day overrides the check-in status; a late long day stays late
	if total < halfDayThresholdHours {
		record.Status = attendance.StatusHalfDay
	}

	if err := s.recordRepo.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update record: %w", err)
	}

	return record.ToResponse(), nil
}

// GetMyHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.MonthFilter) ([]attendance.RecordResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repoFilter := attendance.Filter{UserID: &userID}
	if filter.Month != 0 || filter.Year != 0 {
		month, year := s.fillMonthFilter(filter)
		prefix := dateutil.MonthPrefix(year, month)
		repoFilter.DatePrefix = &prefix
	}

	records, err := s.recordRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return toResponses(records), nil
}

// GetMySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMySummary(ctx context.Context, filter attendance.MonthFilter) (attendance.MonthlySummaryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	month, year := s.fillMonthFilter(filter)

	prefix := dateutil.MonthPrefix(year, month)
	records, err := s.recordRepo.List(ctx, attendance.Filter{
		UserID:     &userID,
		DatePrefix: &prefix,
	})
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	summary := attendance.MonthlySummaryResponse{Month: month, Year: year}
	var totalHours float64
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		case attendance.StatusAbsent:
			summary.Absent++
		}
		if rec.TotalHours != nil {
			totalHours += *rec.TotalHours
		}
	}
	summary.TotalHours = round2(totalHours)

	return summary, nil
}

// GetMyTodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyTodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	today := dateutil.DayKey(s.now().In(s.loc))

	record, err := s.recordRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to load today's record: %w", err)
	}

	if record == nil {
		return attendance.TodayStatusResponse{
			Date:   today,
			Status: attendance.SentinelNotMarked,
		}, nil
	}

	resp := record.ToResponse()
	return attendance.TodayStatusResponse{
		Date:       today,
		Status:     string(record.Status),
		CheckedIn:  record.CheckInTime != nil,
		CheckedOut: record.CheckOutTime != nil,
		Record:     &resp,
	}, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.ListFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repoFilter := attendance.Filter{JoinUser: true}
	if filter.Date != "" {
		repoFilter.Date = &filter.Date
	}
	if filter.EmployeeCode != "" {
		repoFilter.EmployeeCode = &filter.EmployeeCode
	}
	if filter.Status != "" {
		status := attendance.Status(filter.Status)
		repoFilter.Status = &status
	}

	records, err := s.recordRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return toResponses(records), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, userID string, filter attendance.RangeFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	repoFilter := attendance.Filter{UserID: &userID, JoinUser: true}
	if filter.StartDate != "" {
		repoFilter.StartDate = &filter.StartDate
		repoFilter.EndDate = &filter.EndDate
	}

	records, err := s.recordRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return toResponses(records), nil
}

// GetTeamSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTeamSummary(ctx context.Context) (attendance.TeamSummaryResponse, error) {
	today := dateutil.DayKey(s.now().In(s.loc))

	records, err := s.recordRepo.List(ctx, attendance.Filter{Date: &today})
	if err != nil {
		return attendance.TeamSummaryResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	summary := attendance.TeamSummaryResponse{Date: today}
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		case attendance.StatusAbsent:
			summary.Absent++
		}
	}

	return summary, nil
}

// GetTodayTeamStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayTeamStatus(ctx context.Context) ([]attendance.TeamMemberStatus, error) {
	today := dateutil.DayKey(s.now().In(s.loc))

	employees, err := s.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.recordRepo.List(ctx, attendance.Filter{Date: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	statusByUser := make(map[string]attendance.Status, len(records))
	for _, rec := range records {
		statusByUser[rec.UserID] = rec.Status
	}

	result := make([]attendance.TeamMemberStatus, 0, len(employees))
	for _, emp := range employees {
		status, ok := statusByUser[emp.ID]
		if !ok {
			status = attendance.StatusAbsent
		}
		result = append(result, attendance.TeamMemberStatus{
			EmployeeCode: emp.EmployeeCode,
			Name:         emp.Name,
			Department:   emp.Department,
			Status:       status,
		})
	}

	return result, nil
}

// ExportCSV implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportCSV(ctx context.Context, filter attendance.ExportFilter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	repoFilter := attendance.Filter{JoinUser: true, SortAsc: true}
	if filter.StartDate != "" {
		repoFilter.StartDate = &filter.StartDate
		repoFilter.EndDate = &filter.EndDate
	}
	if filter.EmployeeCode != "" {
		repoFilter.EmployeeCode = &filter.EmployeeCode
	}

	records, err := s.recordRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return report.AttendanceCSV(records), nil
}

func toResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.ToResponse())
	}
	return responses
}
