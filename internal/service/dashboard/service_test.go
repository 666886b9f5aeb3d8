package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *DashboardServiceImpl
	userRepo   *memory.UserRepository
	recordRepo *memory.RecordRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userRepo := memory.NewUserRepository()
	recordRepo := memory.NewRecordRepository(userRepo)

	svc := NewDashboardService(recordRepo, userRepo, config.AttendanceConfig{
		Timezone:   "UTC",
		LateCutoff: "09:30",
	})

	f := &fixture{
		svc:        svc.(*DashboardServiceImpl),
		userRepo:   userRepo,
		recordRepo: recordRepo,
	}
	// Monday 2026-03-09, noon
	f.svc.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) addUser(t *testing.T, name, code, dept string, role user.Role) user.User {
	t.Helper()
	u, err := f.userRepo.Create(context.Background(), user.User{
		ID:           uuid.NewString(),
		Name:         name,
		EmployeeCode: code,
		Email:        strings.ToLower(code) + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Department:   dept,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) addRecord(t *testing.T, userID, date string, status attendance.Status, hours *float64) {
	t.Helper()
	var checkIn *time.Time
	if status != attendance.StatusAbsent {
		parsed, err := time.Parse("2006-01-02", date)
		require.NoError(t, err)
		in := parsed.Add(9 * time.Hour)
		checkIn = &in
	}
	_, err := f.recordRepo.Create(context.Background(), attendance.Record{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		CheckInTime: checkIn,
		Status:      status,
		TotalHours:  hours,
	})
	require.NoError(t, err)
}

func authedCtx(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func hoursPtr(h float64) *float64 { return &h }

func TestGetEmployeeDashboard(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "EMP-001", "Engineering", user.RoleEmployee)

	f.addRecord(t, alice.ID, "2026-03-02", attendance.StatusPresent, hoursPtr(8))
	f.addRecord(t, alice.ID, "2026-03-03", attendance.StatusPresent, hoursPtr(8.5))
	f.addRecord(t, alice.ID, "2026-03-04", attendance.StatusLate, hoursPtr(7))
	f.addRecord(t, alice.ID, "2026-03-09", attendance.StatusPresent, nil)

	resp, err := f.svc.GetEmployeeDashboard(authedCtx(t, alice.ID))
	require.NoError(t, err)

	assert.Equal(t, alice.ID, resp.User.ID)
	assert.Equal(t, "Alice", resp.User.Name)

	assert.Equal(t, 3, resp.MonthSummary.Present)
	assert.Equal(t, 1, resp.MonthSummary.Late)
	assert.Equal(t, 0, resp.MonthSummary.Absent)
	assert.Equal(t, 23.5, resp.MonthSummary.TotalHours)

	assert.Equal(t, "present", resp.Today.Status)

	// 3 present of 4 month records
	assert.Equal(t, 75, resp.AttendanceRate)

	require.Len(t, resp.Recent, 4)
	assert.Equal(t, "2026-03-02", resp.Recent[0].Date, "recent list is oldest first")
	assert.Equal(t, "2026-03-09", resp.Recent[3].Date)
}

func TestGetEmployeeDashboard_NotCheckedInToday(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "EMP-001", "Engineering", user.RoleEmployee)

	resp, err := f.svc.GetEmployeeDashboard(authedCtx(t, alice.ID))
	require.NoError(t, err)

	assert.Equal(t, attendance.SentinelNotCheckedIn, resp.Today.Status)
	assert.Equal(t, 0, resp.AttendanceRate, "no records yields rate 0, not division by zero")
	assert.Empty(t, resp.Recent)
}

func TestGetEmployeeDashboard_RecentCapped(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice", "EMP-001", "Engineering", user.RoleEmployee)

	for day := 1; day <= 9; day++ {
		f.addRecord(t, alice.ID, time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), attendance.StatusPresent, hoursPtr(8))
	}

	resp, err := f.svc.GetEmployeeDashboard(authedCtx(t, alice.ID))
	require.NoError(t, err)

	require.Len(t, resp.Recent, 7)
	assert.Equal(t, "2026-03-03", resp.Recent[0].Date)
	assert.Equal(t, "2026-03-09", resp.Recent[6].Date)
}

func TestGetManagerDashboard(t *testing.T) {
	f := newFixture(t)
	manager := f.addUser(t, "Mona", "MGR-001", "Management", user.RoleManager)
	alice := f.addUser(t, "Alice", "EMP-001", "Engineering", user.RoleEmployee)
	bob := f.addUser(t, "Bob", "EMP-002", "Engineering", user.RoleEmployee)
	carol := f.addUser(t, "Carol", "EMP-003", "Sales", user.RoleEmployee)
	f.addUser(t, "Dave", "EMP-004", "Sales", user.RoleEmployee)

	f.addRecord(t, alice.ID, "2026-03-09", attendance.StatusPresent, nil)
	f.addRecord(t, bob.ID, "2026-03-09", attendance.StatusLate, nil)
	f.addRecord(t, carol.ID, "2026-03-09", attendance.StatusHalfDay, nil)

	resp, err := f.svc.GetManagerDashboard(authedCtx(t, manager.ID))
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.Cards.TotalEmployees)
	assert.Equal(t, 2, resp.Cards.PresentToday, "half-day counts as present on the cards")
	assert.Equal(t, 1, resp.Cards.LateToday)
	assert.Equal(t, 0, resp.Cards.AbsentToday, "no stored absent records today")

	assert.Equal(t, "2026-03-09", resp.Today)

	require.Len(t, resp.LateArrivals, 1)
	assert.Equal(t, "Bob", resp.LateArrivals[0].Name)
	assert.Equal(t, "EMP-002", resp.LateArrivals[0].EmployeeCode)
	require.NotNil(t, resp.LateArrivals[0].CheckInTime)

	assert.Len(t, resp.PresentList, 3, "everyone with a record today is listed")

	require.Len(t, resp.DepartmentDistribution, 2)
	assert.Equal(t, "Engineering", resp.DepartmentDistribution[0].Name)
	assert.Equal(t, 2, resp.DepartmentDistribution[0].Count)
	assert.Equal(t, "Sales", resp.DepartmentDistribution[1].Name)
	assert.Equal(t, 2, resp.DepartmentDistribution[1].Count)
}

func TestGetManagerDashboard_WeeklyTrend(t *testing.T) {
	f := newFixture(t)
	manager := f.addUser(t, "Mona", "MGR-001", "Management", user.RoleManager)
	alice := f.addUser(t, "Alice", "EMP-001", "Engineering", user.RoleEmployee)
	bob := f.addUser(t, "Bob", "EMP-002", "Sales", user.RoleEmployee)

	// Last Tuesday and today
	f.addRecord(t, alice.ID, "2026-03-03", attendance.StatusPresent, hoursPtr(8))
	f.addRecord(t, bob.ID, "2026-03-03", attendance.StatusLate, hoursPtr(7))
	f.addRecord(t, alice.ID, "2026-03-09", attendance.StatusPresent, nil)
	// Outside the window
	f.addRecord(t, alice.ID, "2026-03-02", attendance.StatusPresent, hoursPtr(8))

	resp, err := f.svc.GetManagerDashboard(authedCtx(t, manager.ID))
	require.NoError(t, err)

	require.Len(t, resp.WeeklyTrend, 7)

	assert.Equal(t, "Tue", resp.WeeklyTrend[0].Day)
	assert.Equal(t, 2, resp.WeeklyTrend[0].Present)
	assert.Equal(t, 0, resp.WeeklyTrend[0].Absent)

	assert.Equal(t, "Mon", resp.WeeklyTrend[6].Day)
	assert.Equal(t, 1, resp.WeeklyTrend[6].Present)
	assert.Equal(t, 1, resp.WeeklyTrend[6].Absent)

	// Days with no records show full absence
	assert.Equal(t, "Sun", resp.WeeklyTrend[5].Day)
	assert.Equal(t, 0, resp.WeeklyTrend[5].Present)
	assert.Equal(t, 2, resp.WeeklyTrend[5].Absent)
}

func TestGetManagerDashboard_AbsentCountsStoredRecordsOnly(t *testing.T) {
	f := newFixture(t)
	manager := f.addUser(t, "Mona", "MGR-001", "Management", user.RoleManager)
	alice := f.addUser(t, "Alice", "EMP-001", "Engineering", user.RoleEmployee)
	f.addUser(t, "Bob", "EMP-002", "Sales", user.RoleEmployee)
	f.addUser(t, "Carol", "EMP-003", "Sales", user.RoleEmployee)

	// Nobody checked in and nothing is stored: the card stays 0 even with
	// three employees missing.
	resp, err := f.svc.GetManagerDashboard(authedCtx(t, manager.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Cards.TotalEmployees)
	assert.Equal(t, 0, resp.Cards.AbsentToday)

	// A stored absent record (legacy importer) is counted and kept off the
	// present list.
	f.addRecord(t, alice.ID, "2026-03-09", attendance.StatusAbsent, nil)

	resp, err = f.svc.GetManagerDashboard(authedCtx(t, manager.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Cards.AbsentToday)
	assert.Empty(t, resp.PresentList)
}

func TestGetManagerDashboard_Empty(t *testing.T) {
	f := newFixture(t)
	manager := f.addUser(t, "Mona", "MGR-001", "Management", user.RoleManager)

	resp, err := f.svc.GetManagerDashboard(authedCtx(t, manager.ID))
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.Cards.TotalEmployees)
	assert.Equal(t, 0, resp.Cards.AbsentToday)
	assert.Empty(t, resp.LateArrivals)
	assert.Empty(t, resp.PresentList)
	assert.Empty(t, resp.DepartmentDistribution)
	require.Len(t, resp.WeeklyTrend, 7)
}
