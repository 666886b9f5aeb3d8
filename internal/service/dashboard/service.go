package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/dateutil"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

const recentRecordCount = 7

type DashboardServiceImpl struct {
	recordRepo attendance.RecordRepository
	userRepo   user.UserRepository

	loc *time.Location

	// now is swapped out by tests
	now func() time.Time
}

func NewDashboardService(
	recordRepo attendance.RecordRepository,
	userRepo user.UserRepository,
	cfg config.AttendanceConfig,
) dashboard.DashboardService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}

	return &DashboardServiceImpl{
		recordRepo: recordRepo,
		userRepo:   userRepo,
		loc:        loc,
		now:        time.Now,
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

// GetEmployeeDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context) (dashboard.EmployeeDashboardResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	now := s.now().In(s.loc)
	today := dateutil.DayKey(now)
	monthPrefix := dateutil.MonthPrefix(now.Year(), int(now.Month()))

	monthRecords, err := s.recordRepo.List(ctx, attendance.Filter{
		UserID:     &userID,
		DatePrefix: &monthPrefix,
	})
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, fmt.Errorf("failed to list month records: %w", err)
	}

	summary := dashboard.MonthSummary{}
	var totalHours float64
	for _, rec := range monthRecords {
		switch rec.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		case attendance.StatusAbsent:
			summary.Absent++
		}
		if rec.TotalHours != nil {
			totalHours += *rec.TotalHours
		}
	}
	summary.TotalHours = math.Round(totalHours*100) / 100

	todayStatus := attendance.SentinelNotCheckedIn
	todayRecord, err := s.recordRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, fmt.Errorf("failed to load today's record: %w", err)
	}
	if todayRecord != nil {
		todayStatus = string(todayRecord.Status)
	}

	recent, err := s.recordRepo.List(ctx, attendance.Filter{
		UserID: &userID,
		Limit:  recentRecordCount,
	})
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, fmt.Errorf("failed to list recent records: %w", err)
	}
	// Newest first from the store, oldest first on the chart
	recentResponses := make([]attendance.RecordResponse, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		recentResponses = append(recentResponses, recent[i].ToResponse())
	}

	rate := int(math.Round(float64(summary.Present) / math.Max(1, float64(len(monthRecords))) * 100))

	return dashboard.EmployeeDashboardResponse{
		User:           dashboard.UserInfo{ID: u.ID, Name: u.Name},
		MonthSummary:   summary,
		Today:          dashboard.TodayInfo{Status: todayStatus},
		AttendanceRate: rate,
		Recent:         recentResponses,
	}, nil
}

// GetManagerDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetManagerDashboard(ctx context.Context) (dashboard.ManagerDashboardResponse, error) {
	now := s.now().In(s.loc)
	today := dateutil.DayKey(now)
	weekStart := dateutil.DayKey(now.AddDate(0, 0, -6))

	var (
		totalEmployees int64
		todayRecords   []attendance.Record
		employees      []user.User
		weekRecords    []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalEmployees, err = s.userRepo.CountByRole(gCtx, user.RoleEmployee)
		return err
	})
	g.Go(func() error {
		var err error
		todayRecords, err = s.recordRepo.List(gCtx, attendance.Filter{Date: &today, JoinUser: true})
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = s.userRepo.ListByRole(gCtx, user.RoleEmployee)
		return err
	})
	g.Go(func() error {
		var err error
		weekRecords, err = s.recordRepo.List(gCtx, attendance.Filter{
			StartDate: &weekStart,
			EndDate:   &today,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return dashboard.ManagerDashboardResponse{}, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	// Card counters tally today's stored records only. Employees with no
	// record are not counted absent here; consumers read the gap off
	// totalEmployees themselves.
	cards := dashboard.Cards{TotalEmployees: totalEmployees}
	var lateArrivals []dashboard.LateArrival
	presentList := make([]dashboard.PresentEmployee, 0, len(todayRecords))
	for _, rec := range todayRecords {
		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusHalfDay:
			cards.PresentToday++
		case attendance.StatusLate:
			cards.LateToday++
			lateArrivals = append(lateArrivals, dashboard.LateArrival{
				Name:         strPtrOrEmpty(rec.UserName),
				EmployeeCode: strPtrOrEmpty(rec.UserEmployeeCode),
				Department:   strPtrOrEmpty(rec.UserDepartment),
				CheckInTime:  timePtrToString(rec.CheckInTime),
			})
		case attendance.StatusAbsent:
			cards.AbsentToday++
		}
		if rec.Status != attendance.StatusAbsent {
			presentList = append(presentList, dashboard.PresentEmployee{
				Name:         strPtrOrEmpty(rec.UserName),
				EmployeeCode: strPtrOrEmpty(rec.UserEmployeeCode),
				Department:   strPtrOrEmpty(rec.UserDepartment),
				Status:       rec.Status,
			})
		}
	}

	return dashboard.ManagerDashboardResponse{
		Cards:                  cards,
		WeeklyTrend:            s.weeklyTrend(now, weekRecords, int(totalEmployees)),
		DepartmentDistribution: departmentDistribution(employees),
		LateArrivals:           lateArrivals,
		PresentList:            presentList,
		Today:                  today,
	}, nil
}

// weeklyTrend counts per-day presence over the trailing 7 days, oldest first.
// Any record for a day counts as present regardless of lateness.
func (s *DashboardServiceImpl) weeklyTrend(now time.Time, records []attendance.Record, totalEmployees int) []dashboard.WeeklyTrendDay {
	presentByDay := make(map[string]int)
	for _, rec := range records {
		if rec.Status != attendance.StatusAbsent {
			presentByDay[rec.Date]++
		}
	}

	trend := make([]dashboard.WeeklyTrendDay, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		present := presentByDay[dateutil.DayKey(day)]
		absent := totalEmployees - present
		if absent < 0 {
			absent = 0
		}
		trend = append(trend, dashboard.WeeklyTrendDay{
			Day:     day.Format("Mon"),
			Present: present,
			Absent:  absent,
		})
	}

	return trend
}

func departmentDistribution(employees []user.User) []dashboard.DepartmentCount {
	counts := make(map[string]int)
	for _, emp := range employees {
		counts[emp.Department]++
	}

	distribution := make([]dashboard.DepartmentCount, 0, len(counts))
	for name, count := range counts {
		distribution = append(distribution, dashboard.DepartmentCount{Name: name, Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Name < distribution[j].Name
	})

	return distribution
}

func strPtrOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
