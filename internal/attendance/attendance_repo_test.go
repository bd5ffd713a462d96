package attendance_test

import (
	"context"
	"testing"

	"go-payroll/internal/attendance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return gdb, mock
}

func TestRepository_UpsertUsesOnConflict(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := attendance.NewRepository(gdb)

	mock.ExpectExec(`INSERT INTO "attendances" .* ON CONFLICT \("employee_id","date"\) DO UPDATE SET "status"="excluded"."status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &attendance.Attendance{
		ID:         uuid.New(),
		EmployeeID: "EMP001",
		Date:       "2024-03-05",
		Status:     attendance.StatusPresent,
		Source:     attendance.SourceManual,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindForPayrollFiltersByMonthPrefix(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := attendance.NewRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "attendances" WHERE employee_id = \$1 AND date LIKE \$2 ORDER BY date ASC`).
		WithArgs("EMP001", "2024-02-%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "date", "status"}).
			AddRow(uuid.NewString(), "EMP001", "2024-02-01", "Present"))

	rows, err := repo.FindForPayroll(context.Background(), "EMP001", "2024-02")

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
