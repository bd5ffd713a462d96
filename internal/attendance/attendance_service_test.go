package attendance_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"go-payroll/internal/attendance"
	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// memRepo keeps one row per (employee, date) like the unique index does.
type memRepo struct {
	rows      map[string]attendance.Attendance
	employees map[string]bool
	upserts   int
}

func newMemRepo(employees ...string) *memRepo {
	m := &memRepo{rows: map[string]attendance.Attendance{}, employees: map[string]bool{}}
	for _, e := range employees {
		m.employees[e] = true
	}
	return m
}

func key(emp, date string) string { return emp + "|" + date }

func (m *memRepo) WithTx(*sql.Tx) attendance.Repository { return m }

func (m *memRepo) Upsert(_ context.Context, a *attendance.Attendance) error {
	m.upserts++
	if existing, ok := m.rows[key(a.EmployeeID, a.Date)]; ok {
		existing.Status = a.Status
		existing.Source = a.Source
		m.rows[key(a.EmployeeID, a.Date)] = existing
		return nil
	}
	m.rows[key(a.EmployeeID, a.Date)] = *a
	return nil
}

func (m *memRepo) FindByEmployeeAndDate(_ context.Context, emp, date string) (*attendance.Attendance, error) {
	if a, ok := m.rows[key(emp, date)]; ok {
		return &a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) List(_ context.Context, f attendance.ListFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.rows {
		if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Month != "" && !strings.HasPrefix(a.Date, f.Month+"-") {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memRepo) FindForPayroll(ctx context.Context, emp, month string) ([]attendance.Attendance, error) {
	return m.List(ctx, attendance.ListFilter{EmployeeID: emp, Month: month})
}

func (m *memRepo) EmployeeExists(_ context.Context, emp string) (bool, error) {
	return m.employees[emp], nil
}

func newTxDB(t *testing.T, commits int) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	for i := 0; i < commits; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var (
	admin = domain.Actor{EmployeeID: "EMPADMIN", Role: domain.RoleAdmin}
	emp1  = domain.Actor{EmployeeID: "EMP001", Role: domain.RoleEmployee}
)

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("second write for the same day replaces the status", func(t *testing.T) {
		repo := newMemRepo("EMP001")
		svc := attendance.NewService(newTxDB(t, 2), repo)

		_, err := svc.Upsert(ctx, admin, attendance.UpsertAttendanceRequest{EmployeeID: "EMP001", Date: "2024-03-05", Status: "Present"})
		assert.NoError(t, err)

		resp, err := svc.Upsert(ctx, admin, attendance.UpsertAttendanceRequest{EmployeeID: "EMP001", Date: "2024-03-05", Status: "Half Day"})
		assert.NoError(t, err)

		assert.Equal(t, "Half Day", resp.Status)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("employee id defaults to the caller", func(t *testing.T) {
		repo := newMemRepo("EMP001")
		svc := attendance.NewService(newTxDB(t, 1), repo)

		resp, err := svc.Upsert(ctx, emp1, attendance.UpsertAttendanceRequest{Date: "2024-03-05", Status: "Leave"})

		assert.NoError(t, err)
		assert.Equal(t, "EMP001", resp.EmployeeID)
		assert.Equal(t, attendance.SourceManual, resp.Source)
	})

	t.Run("employee cannot write for someone else", func(t *testing.T) {
		svc := attendance.NewService(newTxDB(t, 0), newMemRepo("EMP001", "EMP002"))

		_, err := svc.Upsert(ctx, emp1, attendance.UpsertAttendanceRequest{EmployeeID: "EMP002", Date: "2024-03-05", Status: "Present"})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := attendance.NewService(newTxDB(t, 0), newMemRepo("EMP001"))

		_, err := svc.Upsert(ctx, admin, attendance.UpsertAttendanceRequest{EmployeeID: "EMP001", Date: "2024-02-30", Status: "Present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("unknown employee", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()
		svc := attendance.NewService(db, newMemRepo())

		_, err := svc.Upsert(ctx, admin, attendance.UpsertAttendanceRequest{EmployeeID: "EMP404", Date: "2024-03-05", Status: "Present"})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo("EMP001", "EMP002")
	repo.rows[key("EMP001", "2024-03-01")] = attendance.Attendance{EmployeeID: "EMP001", Date: "2024-03-01", Status: "Present"}
	repo.rows[key("EMP001", "2024-04-01")] = attendance.Attendance{EmployeeID: "EMP001", Date: "2024-04-01", Status: "Present"}
	repo.rows[key("EMP002", "2024-03-01")] = attendance.Attendance{EmployeeID: "EMP002", Date: "2024-03-01", Status: "Absent"}
	svc := attendance.NewService(nil, repo)

	t.Run("admin filters by month", func(t *testing.T) {
		resp, err := svc.List(ctx, admin, attendance.ListFilter{Month: "2024-03"})
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("employee is scoped to self", func(t *testing.T) {
		resp, err := svc.List(ctx, emp1, attendance.ListFilter{})
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		for _, r := range resp {
			assert.Equal(t, "EMP001", r.EmployeeID)
		}
	})

	t.Run("employee asking for another employee", func(t *testing.T) {
		_, err := svc.List(ctx, emp1, attendance.ListFilter{EmployeeID: "EMP002"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("bad month", func(t *testing.T) {
		_, err := svc.List(ctx, admin, attendance.ListFilter{Month: "2024-13"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonth)
	})
}

func TestService_ImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("counts inserted, updated and skipped rows", func(t *testing.T) {
		repo := newMemRepo("EMP001", "EMP002")
		repo.rows[key("EMP001", "2024-03-01")] = attendance.Attendance{EmployeeID: "EMP001", Date: "2024-03-01", Status: "Absent"}
		svc := attendance.NewService(newTxDB(t, 1), repo)

		csv := "employee_id,date,status\n" +
			"EMP001,2024-03-01,Present\n" +
			"EMP001,2024-03-02,Half Day\n" +
			"EMP002,2024-03-01,Leave\n" +
			"EMP999,2024-03-01,Present\n" +
			"EMP002,03/01/2024,Present\n" +
			"EMP002,2024-03-03,\n"

		res, err := svc.ImportCSV(ctx, strings.NewReader(csv))

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Inserted)
		assert.Equal(t, 1, res.Updated)
		assert.Equal(t, 3, res.Skipped)
		assert.Len(t, res.Errors, 3)
		assert.Equal(t, 5, res.Errors[0].Line)
		assert.Equal(t, "Present", repo.rows[key("EMP001", "2024-03-01")].Status)
		assert.Equal(t, attendance.SourceCSV, repo.rows[key("EMP002", "2024-03-01")].Source)
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		svc := attendance.NewService(newTxDB(t, 0), newMemRepo())

		_, err := svc.ImportCSV(ctx, strings.NewReader(""))

		assert.True(t, apperror.Is(err, apperror.CodeInvalidInput))
	})
}
