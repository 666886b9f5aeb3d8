package dashboard

import "context"

// DashboardService computes the composite dashboard views.
type DashboardService interface {
	// GetEmployeeDashboard combines the caller's monthly summary, today
	// snapshot, recent records, and attendance rate.
	GetEmployeeDashboard(ctx context.Context) (EmployeeDashboardResponse, error)

	// GetManagerDashboard combines team-wide counters, distributions, and
	// today's late/present listings.
	GetManagerDashboard(ctx context.Context) (ManagerDashboardResponse, error)
}
