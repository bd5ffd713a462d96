package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-payroll/internal/domain"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn      func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn      func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetOptionsFn  func(ctx context.Context) ([]employee.EmployeeOption, error)
	GetByIDFn     func(ctx context.Context, actor domain.Actor, id string) (employee.EmployeeResponse, error)
	UpdateFn      func(ctx context.Context, actor domain.Actor, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn      func(ctx context.Context, id string) error
	EnsureAdminFn func(ctx context.Context, password string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.GetOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, actor domain.Actor, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, actor, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, actor domain.Actor, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, actor, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeEmployeeService) EnsureAdmin(ctx context.Context, password string) error {
	return f.EnsureAdminFn(ctx, password)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withActor(employeeID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", employeeID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Next()
	}
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Asha Rao", req.Name)
				assert.Equal(t, int64(20000), *req.BasicSalary)
				return employee.EmployeeResponse{ID: "EMP001", Name: req.Name, AppRole: "employee"}, nil
			},
		}
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(svc).Create)

		req := httptest.NewRequest(http.MethodPost, "/employees",
			strings.NewReader(`{"name":"Asha Rao","email":"asha@acme.in","basicSalary":20000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"EMP001"`)
	})

	t.Run("missing name", func(t *testing.T) {
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(&fakeEmployeeService{}).Create)

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"email":"asha@acme.in"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("negative salary rejected", func(t *testing.T) {
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(&fakeEmployeeService{}).Create)

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"A","basicSalary":-1}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: "EMP002", Name: "Ravi"},
				{ID: "EMP001", Name: "Asha"},
				{ID: "EMPADMIN", Name: "Admin User"},
			}, nil
		},
	}
	r := setupRouter()
	r.GET("/employees", employee.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=a&sort_by=name&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Index(body, "Admin User") < strings.Index(body, "Asha"))
	assert.NotContains(t, body, "Ravi")
	assert.Contains(t, body, `"total":3`)
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("passes the caller through", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(_ context.Context, actor domain.Actor, id string) (employee.EmployeeResponse, error) {
				assert.Equal(t, domain.Actor{EmployeeID: "EMP001", Role: "employee"}, actor)
				return employee.EmployeeResponse{ID: id, Name: "Asha"}, nil
			},
		}
		r := setupRouter()
		r.GET("/employees/:id", withActor("EMP001", "employee"), employee.NewHandler(svc).GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/EMP001", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(context.Context, domain.Actor, string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		r := setupRouter()
		r.GET("/employees/:id", withActor("EMPADMIN", "admin"), employee.NewHandler(svc).GetByID)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/EMP404", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	svc := &fakeEmployeeService{
		UpdateFn: func(_ context.Context, _ domain.Actor, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Nil(t, req.Name)
			assert.Equal(t, "999", *req.Phone)
			return employee.EmployeeResponse{ID: id, Phone: *req.Phone}, nil
		},
	}
	r := setupRouter()
	r.PUT("/employees/:id", withActor("EMP001", "employee"), employee.NewHandler(svc).Update)

	req := httptest.NewRequest(http.MethodPut, "/employees/EMP001", strings.NewReader(`{"phone":"999"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_Delete(t *testing.T) {
	svc := &fakeEmployeeService{
		DeleteFn: func(_ context.Context, id string) error {
			if id == employee.AdminID {
				return employeeerrors.ErrCannotDeleteAdmin
			}
			return nil
		},
	}
	r := setupRouter()
	r.DELETE("/employees/:id", employee.NewHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/EMP001", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/EMPADMIN", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}
