package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/memory"
	attendanceSvc "github.com/attendly/attendance-backend-go/internal/service/attendance"
	authSvc "github.com/attendly/attendance-backend-go/internal/service/auth"
	dashboardSvc "github.com/attendly/attendance-backend-go/internal/service/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			AccessExpiration: "1h",
		},
		App: config.AppConfig{
			Port:        8080,
			Env:         "test",
			FrontendURL: "http://localhost:5173",
		},
		Attendance: config.AttendanceConfig{
			Timezone:   "UTC",
			LateCutoff: "09:30",
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := testConfig()
	userRepo := memory.NewUserRepository()
	recordRepo := memory.NewRecordRepository(userRepo)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := NewRouter(
		cfg,
		jwtService,
		NewAuthHandler(authSvc.NewAuthService(userRepo, jwtService)),
		NewAttendanceHandler(attendanceSvc.NewAttendanceService(recordRepo, userRepo, cfg.Attendance)),
		NewDashboardHandler(dashboardSvc.NewDashboardService(recordRepo, userRepo, cfg.Attendance)),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, apiEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var envelope apiEnvelope
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	}
	return resp, envelope
}

func register(t *testing.T, srv *httptest.Server, name, code, email, role string) string {
	t.Helper()

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name":       name,
		"employeeId": code,
		"email":      email,
		"password":   "password123",
		"role":       role,
		"department": "Engineering",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestRouter_AuthFlow(t *testing.T) {
	srv := newTestServer(t)

	token := register(t, srv, "Alice", "EMP-001", "alice@example.com", "employee")

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, envelope.Success)
	assert.Contains(t, string(envelope.Data), `"employeeId":"EMP-001"`)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name":       "Alice",
		"employeeId": "EMP-001",
		"email":      "not-an-email",
		"password":   "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Details, "email")
	assert.Contains(t, envelope.Error.Details, "password")
}

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/attendance/today",
		"/api/dashboard/employee",
		"/api/auth/me",
	} {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouter_ManagerOnlyRoutes(t *testing.T) {
	srv := newTestServer(t)

	employeeToken := register(t, srv, "Alice", "EMP-001", "alice@example.com", "employee")
	managerToken := register(t, srv, "Mona", "MGR-001", "mona@example.com", "manager")

	for _, path := range []string{
		"/api/attendance/all",
		"/api/attendance/summary",
		"/api/attendance/today-status",
		"/api/dashboard/manager",
	} {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+path, employeeToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)

		resp, _ = doJSON(t, http.MethodGet, srv.URL+path, managerToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestRouter_CheckInFlow(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Alice", "EMP-001", "alice@example.com", "employee")

	// Checking out before checking in is rejected
	resp, envelope := doJSON(t, http.MethodPost, srv.URL+"/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "you must check in before checking out", envelope.Error.Message)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Second check-in the same day is rejected
	resp, envelope = doJSON(t, http.MethodPost, srv.URL+"/api/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "already checked in today", envelope.Error.Message)

	resp, envelope = doJSON(t, http.MethodGet, srv.URL+"/api/attendance/today", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(envelope.Data), `"checkedIn":true`)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_TodaySentinel(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Alice", "EMP-001", "alice@example.com", "employee")

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/attendance/today", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(envelope.Data), `"status":"not_marked"`)
}

func TestRouter_InvalidQueryRejected(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Alice", "EMP-001", "alice@example.com", "employee")

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/attendance/my-summary?month=13&year=2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Export(t *testing.T) {
	srv := newTestServer(t)

	employeeToken := register(t, srv, "Alice", "EMP-001", "alice@example.com", "employee")
	managerToken := register(t, srv, "Mona", "MGR-001", "mona@example.com", "manager")

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/attendance/checkin", employeeToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/attendance/export", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+managerToken)

	exportResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer exportResp.Body.Close()

	assert.Equal(t, http.StatusOK, exportResp.StatusCode)
	assert.Equal(t, "text/csv", exportResp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance.csv"`, exportResp.Header.Get("Content-Disposition"))

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(exportResp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Employee Name,Employee ID,Department,Date,Status,Check In,Check Out,Total Hours", lines[0])
	assert.Contains(t, lines[1], "Alice,EMP-001,Engineering")
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, http.MethodGet, srv.URL+"/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}
