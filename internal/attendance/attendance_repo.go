package attendance

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/dbtx"
	"go-payroll/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
	FindForPayroll(ctx context.Context, employeeID, month string) ([]Attendance, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Bind(r.db, r.tx).WithContext(ctx)
}

// Upsert inserts the record or, when (employee_id, date) already exists,
// overwrites its status in the same statement.
func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "source", "updated_at"}),
		}).
		Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID)).
		Where("date = ?", date).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	q := r.conn(ctx).Scopes(scope.MonthPrefix("date", filter.Month))
	if filter.EmployeeID != "" {
		q = q.Scopes(scope.Employee(filter.EmployeeID))
	}

	var rows []Attendance
	err := q.Order("date DESC, employee_id ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindForPayroll(ctx context.Context, employeeID, month string) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID), scope.MonthPrefix("date", month)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var n int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Count(&n).Error
	return n > 0, err
}
