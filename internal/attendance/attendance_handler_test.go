package attendance_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/attendance"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	UpsertFn    func(ctx context.Context, actor domain.Actor, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error)
	ListFn      func(ctx context.Context, actor domain.Actor, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
	ImportCSVFn func(ctx context.Context, r io.Reader) (attendance.ImportResult, error)
}

func (f *fakeAttendanceService) Upsert(ctx context.Context, actor domain.Actor, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.UpsertFn(ctx, actor, req)
}
func (f *fakeAttendanceService) List(ctx context.Context, actor domain.Actor, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.ListFn(ctx, actor, filter)
}
func (f *fakeAttendanceService) ImportCSV(ctx context.Context, r io.Reader) (attendance.ImportResult, error) {
	return f.ImportCSVFn(ctx, r)
}

func setupRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "EMP001")
		c.Set("employee_id", "EMP001")
		c.Set("role", role)
		c.Next()
	})
	return r
}

func TestAttendanceHandler_Upsert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			UpsertFn: func(_ context.Context, actor domain.Actor, req attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
				assert.Equal(t, "EMP001", actor.EmployeeID)
				assert.Equal(t, "Half Day", req.Status)
				return attendance.AttendanceResponse{EmployeeID: "EMP001", Date: req.Date, Status: req.Status}, nil
			},
		}
		r := setupRouter(domain.RoleEmployee)
		r.POST("/attendance", attendance.NewHandler(svc).Upsert)

		req := httptest.NewRequest(http.MethodPost, "/attendance",
			strings.NewReader(`{"date":"2024-03-05","status":"Half Day"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"Half Day"`)
	})

	t.Run("missing status", func(t *testing.T) {
		r := setupRouter(domain.RoleEmployee)
		r.POST("/attendance", attendance.NewHandler(&fakeAttendanceService{}).Upsert)

		req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(`{"date":"2024-03-05"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forbidden from service", func(t *testing.T) {
		svc := &fakeAttendanceService{
			UpsertFn: func(context.Context, domain.Actor, attendance.UpsertAttendanceRequest) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, apperror.ErrForbidden
			},
		}
		r := setupRouter(domain.RoleEmployee)
		r.POST("/attendance", attendance.NewHandler(svc).Upsert)

		req := httptest.NewRequest(http.MethodPost, "/attendance",
			strings.NewReader(`{"employeeId":"EMP002","date":"2024-03-05","status":"Present"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAttendanceHandler_GetAll(t *testing.T) {
	svc := &fakeAttendanceService{
		ListFn: func(_ context.Context, _ domain.Actor, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "2024-03", filter.Month)
			assert.Equal(t, "EMP002", filter.EmployeeID)
			return []attendance.AttendanceResponse{{EmployeeID: "EMP002", Date: "2024-03-01", Status: "Present"}}, nil
		},
	}
	r := setupRouter(domain.RoleAdmin)
	r.GET("/attendance", attendance.NewHandler(svc).GetAll)

	req := httptest.NewRequest(http.MethodGet, "/attendance?employeeId=EMP002&month=2024-03", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employeeId":"EMP002"`)
}

func TestAttendanceHandler_Import(t *testing.T) {
	const payload = "employee_id,date,status\nEMP001,2024-03-01,Present\n"

	newSvc := func(t *testing.T) *fakeAttendanceService {
		return &fakeAttendanceService{
			ImportCSVFn: func(_ context.Context, r io.Reader) (attendance.ImportResult, error) {
				b, err := io.ReadAll(r)
				assert.NoError(t, err)
				assert.Equal(t, payload, string(b))
				return attendance.ImportResult{Inserted: 1}, nil
			},
		}
	}

	t.Run("raw csv body", func(t *testing.T) {
		r := setupRouter(domain.RoleAdmin)
		r.POST("/attendance/import", attendance.NewHandler(newSvc(t)).Import)

		req := httptest.NewRequest(http.MethodPost, "/attendance/import", strings.NewReader(payload))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"inserted":1`)
	})

	t.Run("multipart upload", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, _ := mw.CreateFormFile("file", "march.csv")
		_, _ = fw.Write([]byte(payload))
		_ = mw.Close()

		r := setupRouter(domain.RoleAdmin)
		r.POST("/attendance/import", attendance.NewHandler(newSvc(t)).Import)

		req := httptest.NewRequest(http.MethodPost, "/attendance/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("multipart without file field", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("note", "x")
		_ = mw.Close()

		r := setupRouter(domain.RoleAdmin)
		r.POST("/attendance/import", attendance.NewHandler(&fakeAttendanceService{}).Import)

		req := httptest.NewRequest(http.MethodPost, "/attendance/import", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
