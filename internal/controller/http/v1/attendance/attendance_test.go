package attendance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hrm/backend/foundation/web"
	"hrm/backend/internal/repository/postgres"
	attendance_repository "hrm/backend/internal/repository/postgres/attendance"
)

type stubAttendance struct {
	checkIn  attendance_repository.CheckInResponse
	checkOut attendance_repository.CheckOutResponse
	summary  attendance_repository.DailySummaryResponse
	err      error
}

func (s stubAttendance) CheckIn(ctx context.Context) (attendance_repository.CheckInResponse, error) {
	return s.checkIn, s.err
}

func (s stubAttendance) CheckOut(ctx context.Context) (attendance_repository.CheckOutResponse, error) {
	return s.checkOut, s.err
}

func (s stubAttendance) DailySummary(ctx context.Context) (attendance_repository.DailySummaryResponse, error) {
	return s.summary, s.err
}

func (s stubAttendance) GetList(ctx context.Context, filter attendance_repository.Filter) ([]attendance_repository.GetListResponse, int, error) {
	return nil, 0, s.err
}

func (s stubAttendance) GetHistory(ctx context.Context, filter attendance_repository.Filter) ([]attendance_repository.HistoryResponse, error) {
	return nil, s.err
}

func (s stubAttendance) GetDetailById(ctx context.Context, id int) (attendance_repository.GetDetailByIdResponse, error) {
	return attendance_repository.GetDetailByIdResponse{}, s.err
}

func (s stubAttendance) Delete(ctx context.Context, id int) error {
	return s.err
}

func newTestApp(stub stubAttendance) *web.App {
	gin.SetMode(gin.TestMode)
	app := &web.App{Engine: gin.New()}
	controller := NewController(stub)

	app.Post("/api/v1/attendance/check-in", controller.CheckIn)
	app.Post("/api/v1/attendance/check-out", controller.CheckOut)
	app.Get("/api/v1/attendance/summary", controller.DailySummary)

	return app
}

func doRequest(t *testing.T, app *web.App, method, target string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body %q: %v", w.Body.String(), err)
	}

	return w.Code, body
}

func TestCheckIn(t *testing.T) {
	checkIn := time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC)
	app := newTestApp(stubAttendance{
		checkIn: attendance_repository.CheckInResponse{ID: 1, UserID: 5, CheckIn: checkIn},
	})

	code, body := doRequest(t, app, http.MethodPost, "/api/v1/attendance/check-in")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if body["message"] != "Check-in recorded successfully" {
		t.Errorf("message = %v", body["message"])
	}
	if body["status"] != true {
		t.Errorf("status = %v, want true", body["status"])
	}
	if body["check_in"] == nil {
		t.Error("check_in missing from response")
	}
}

func TestCheckInAlreadyOpen(t *testing.T) {
	app := newTestApp(stubAttendance{
		err: web.NewRequestError(postgres.ErrAlreadyOpen, http.StatusBadRequest),
	})

	code, body := doRequest(t, app, http.MethodPost, "/api/v1/attendance/check-in")

	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if body["error"] != "Already checked in!" {
		t.Errorf("error = %v, want %q", body["error"], "Already checked in!")
	}
	if body["status"] != false {
		t.Errorf("status = %v, want false", body["status"])
	}
}

func TestCheckOut(t *testing.T) {
	app := newTestApp(stubAttendance{
		checkOut: attendance_repository.CheckOutResponse{
			ID:            1,
			TotalWorkTime: "1:15:00",
			Overtime:      "0:00:00",
		},
	})

	code, body := doRequest(t, app, http.MethodPost, "/api/v1/attendance/check-out")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if body["message"] != "Check-out recorded successfully" {
		t.Errorf("message = %v", body["message"])
	}
	if body["total_work_time"] != "1:15:00" {
		t.Errorf("total_work_time = %v, want %q", body["total_work_time"], "1:15:00")
	}
	if body["overtime"] != "0:00:00" {
		t.Errorf("overtime = %v, want %q", body["overtime"], "0:00:00")
	}
}

func TestCheckOutWithoutActiveSession(t *testing.T) {
	app := newTestApp(stubAttendance{
		err: web.NewRequestError(postgres.ErrNoActiveSession, http.StatusBadRequest),
	})

	code, body := doRequest(t, app, http.MethodPost, "/api/v1/attendance/check-out")

	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", code, http.StatusBadRequest)
	}
	if body["error"] != "No active check-in found!" {
		t.Errorf("error = %v, want %q", body["error"], "No active check-in found!")
	}
}

func TestDailySummary(t *testing.T) {
	app := newTestApp(stubAttendance{
		summary: attendance_repository.DailySummaryResponse{
			TotalWorkTime: "08:20:00",
			TotalOvertime: "00:00:00",
		},
	})

	code, body := doRequest(t, app, http.MethodGet, "/api/v1/attendance/summary")

	if code != http.StatusOK {
		t.Fatalf("status = %d, want %d", code, http.StatusOK)
	}
	if body["total_work_time"] != "08:20:00" {
		t.Errorf("total_work_time = %v, want %q", body["total_work_time"], "08:20:00")
	}
	if body["total_overtime"] != "00:00:00" {
		t.Errorf("total_overtime = %v, want %q", body["total_overtime"], "00:00:00")
	}
}

func TestInternalErrorsAreMasked(t *testing.T) {
	app := newTestApp(stubAttendance{
		err: context.DeadlineExceeded,
	})

	code, body := doRequest(t, app, http.MethodGet, "/api/v1/attendance/summary")

	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", code, http.StatusInternalServerError)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error = %v, want the generic message", body["error"])
	}
}
