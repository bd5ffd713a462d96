package employeesalary

import (
	"context"
	"database/sql"

	"go-payroll/internal/employee"
	"go-payroll/internal/shared/dbtx"
	"go-payroll/internal/shared/scope"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	UpdateStructure(ctx context.Context, employeeID string, s employee.SalaryStructure) error
	CreateRevision(ctx context.Context, rev *SalaryRevision) error
	FindRevisions(ctx context.Context, employeeID string) ([]SalaryRevision, error)
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

// UpdateStructure overwrites the four salary components of an active
// employee; gorm.ErrRecordNotFound when no row matched.
func (r *repository) UpdateStructure(ctx context.Context, employeeID string, s employee.SalaryStructure) error {
	res := r.conn(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Updates(map[string]interface{}{
			"basic_salary":      s.BasicSalary,
			"hra":               s.HRA,
			"da":                s.DA,
			"special_allowance": s.SpecialAllowance,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateRevision(ctx context.Context, rev *SalaryRevision) error {
	return r.conn(ctx).Create(rev).Error
}

func (r *repository) FindRevisions(ctx context.Context, employeeID string) ([]SalaryRevision, error) {
	var revs []SalaryRevision
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("effective_date DESC, created_at DESC").
		Find(&revs).Error
	return revs, err
}
