package employeesalary_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/employeesalary"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	UpdateFn  func(ctx context.Context, id string, req employeesalary.UpdateSalaryRequest) (employeesalary.SalaryRevisionResponse, error)
	HistoryFn func(ctx context.Context, id string) ([]employeesalary.SalaryRevisionResponse, error)
}

func (f *fakeService) Update(ctx context.Context, id string, req employeesalary.UpdateSalaryRequest) (employeesalary.SalaryRevisionResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeService) History(ctx context.Context, id string) ([]employeesalary.SalaryRevisionResponse, error) {
	return f.HistoryFn(ctx, id)
}

func TestHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		UpdateFn: func(_ context.Context, id string, req employeesalary.UpdateSalaryRequest) (employeesalary.SalaryRevisionResponse, error) {
			if id == "EMP404" {
				return employeesalary.SalaryRevisionResponse{}, employeeerrors.ErrEmployeeNotFound
			}
			return employeesalary.SalaryRevisionResponse{EmployeeID: id, BasicSalary: req.BasicSalary, Gross: req.BasicSalary}, nil
		},
	}
	r := gin.New()
	r.PUT("/employees/:id/salary", employeesalary.NewHandler(svc).Update)

	do := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do("/employees/EMP001/salary", `{"basicSalary":20000}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gross":20000`)

	assert.Equal(t, http.StatusNotFound, do("/employees/EMP404/salary", `{"basicSalary":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do("/employees/EMP001/salary", `{"basicSalary":-5}`).Code)
}
