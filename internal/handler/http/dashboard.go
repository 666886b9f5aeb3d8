package http

import (
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Employee(w http.ResponseWriter, r *http.Request)
	Manager(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// Employee implements DashboardHandler.
func (d *DashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	data, err := d.dashboardService.GetEmployeeDashboard(r.Context())
	if err != nil {
		slog.Error("Employee dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}

// Manager implements DashboardHandler.
func (d *DashboardHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	data, err := d.dashboardService.GetManagerDashboard(r.Context())
	if err != nil {
		slog.Error("Manager dashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, data)
}
