package dashboard

import "github.com/attendly/attendance-backend-go/internal/domain/attendance"

// ========== EMPLOYEE DASHBOARD ==========

// EmployeeDashboardResponse is the combined employee dashboard payload.
type EmployeeDashboardResponse struct {
	User           UserInfo                    `json:"user"`
	MonthSummary   MonthSummary                `json:"monthSummary"`
	Today          TodayInfo                   `json:"today"`
	AttendanceRate int                         `json:"attendanceRate"`
	Recent         []attendance.RecordResponse `json:"recent"` // last 7 records, oldest first
}

type UserInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MonthSummary tallies the current month's records for the dashboard cards.
type MonthSummary struct {
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	TotalHours float64 `json:"totalHours"`
}

// TodayInfo reports today's stored status, or not_checked_in when no record
// exists yet.
type TodayInfo struct {
	Status string `json:"status"`
}

// ========== MANAGER DASHBOARD ==========

// ManagerDashboardResponse is the combined manager dashboard payload.
type ManagerDashboardResponse struct {
	Cards                  Cards             `json:"cards"`
	WeeklyTrend            []WeeklyTrendDay  `json:"weeklyTrend"`
	DepartmentDistribution []DepartmentCount `json:"departmentDistribution"`
	LateArrivals           []LateArrival     `json:"lateArrivals"`
	PresentList            []PresentEmployee `json:"presentList"`
	Today                  string            `json:"today"`
}

// Cards holds the headline counters. PresentToday counts half-day records as
// present, unlike the per-user monthly summary; the two call sites
// intentionally disagree and consumers rely on both behaviors. AbsentToday
// counts stored absent records only; employees with no record today do not
// appear in any counter.
type Cards struct {
	TotalEmployees int64 `json:"totalEmployees"`
	PresentToday   int   `json:"presentToday"`
	AbsentToday    int   `json:"absentToday"`
	LateToday      int   `json:"lateToday"`
}

// WeeklyTrendDay is one day of the trailing-week presence chart.
type WeeklyTrendDay struct {
	Day     string `json:"day"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

type DepartmentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type LateArrival struct {
	Name         string  `json:"name"`
	EmployeeCode string  `json:"employeeId"`
	Department   string  `json:"department"`
	CheckInTime  *string `json:"checkInTime"`
}

type PresentEmployee struct {
	Name         string            `json:"name"`
	EmployeeCode string            `json:"employeeId"`
	Department   string            `json:"department"`
	Status       attendance.Status `json:"status"`
}
