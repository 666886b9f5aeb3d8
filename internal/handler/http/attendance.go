package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	EmployeeHistory(w http.ResponseWriter, r *http.Request)
	TeamSummary(w http.ResponseWriter, r *http.Request)
	TodayTeamStatus(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// monthFilterFromQuery parses the optional month/year query parameters.
// Non-numeric values collapse to zero and fail DTO validation downstream.
func monthFilterFromQuery(r *http.Request) attendance.MonthFilter {
	var filter attendance.MonthFilter
	if v := r.URL.Query().Get("month"); v != "" {
		filter.Month, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("year"); v != "" {
		filter.Year, _ = strconv.Atoi(v)
	}
	return filter
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	record, err := a.attendanceService.CheckIn(r.Context())
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	record, err := a.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// MyHistory implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	records, err := a.attendanceService.GetMyHistory(r.Context(), monthFilterFromQuery(r))
	if err != nil {
		slog.Error("MyHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// MySummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.attendanceService.GetMySummary(r.Context(), monthFilterFromQuery(r))
	if err != nil {
		slog.Error("MySummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Today implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	status, err := a.attendanceService.GetMyTodayStatus(r.Context())
	if err != nil {
		slog.Error("Today service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListFilter{
		Date:         r.URL.Query().Get("date"),
		EmployeeCode: r.URL.Query().Get("employeeId"),
		Status:       r.URL.Query().Get("status"),
	}

	records, err := a.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		slog.Error("List service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// EmployeeHistory implements AttendanceHandler.
func (a *AttendanceHandlerImpl) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	filter := attendance.RangeFilter{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	records, err := a.attendanceService.GetEmployeeAttendance(r.Context(), userID, filter)
	if err != nil {
		slog.Error("EmployeeHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// TeamSummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) TeamSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.attendanceService.GetTeamSummary(r.Context())
	if err != nil {
		slog.Error("TeamSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// TodayTeamStatus implements AttendanceHandler.
func (a *AttendanceHandlerImpl) TodayTeamStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := a.attendanceService.GetTodayTeamStatus(r.Context())
	if err != nil {
		slog.Error("TodayTeamStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, statuses)
}

// Export implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ExportFilter{
		RangeFilter: attendance.RangeFilter{
			StartDate: r.URL.Query().Get("startDate"),
			EndDate:   r.URL.Query().Get("endDate"),
		},
		EmployeeCode: r.URL.Query().Get("employeeId"),
	}

	csv, err := a.attendanceService.ExportCSV(r.Context(), filter)
	if err != nil {
		slog.Error("Export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csv)
}
