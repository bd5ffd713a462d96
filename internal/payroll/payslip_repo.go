package payroll

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/dbtx"
	"go-payroll/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Save(ctx context.Context, p *Payslip) error
	FindByID(ctx context.Context, id string) (*Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Payslip, error)
	ListLatestPerEmployee(ctx context.Context, month string) ([]Payslip, error)
	SaveDocument(ctx context.Context, d *PayslipDocument) error
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

func (r *repository) Save(ctx context.Context, p *Payslip) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var p Payslip
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]Payslip, error) {
	var rows []Payslip
	err := r.conn(ctx).
		Scopes(scope.Employee(employeeID)).
		Order("generated_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// ListLatestPerEmployee scans every payslip, newest first, and reduces in
// memory. Cost grows with the full payslip history.
func (r *repository) ListLatestPerEmployee(ctx context.Context, month string) ([]Payslip, error) {
	q := r.conn(ctx)
	if month != "" {
		q = q.Where("month = ?", month)
	}

	var rows []Payslip
	if err := q.Order("generated_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return LatestPerEmployee(rows), nil
}

func (r *repository) SaveDocument(ctx context.Context, d *PayslipDocument) error {
	return r.conn(ctx).Create(d).Error
}
