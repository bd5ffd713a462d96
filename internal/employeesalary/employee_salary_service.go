package employeesalary

import (
	"context"
	"database/sql"
	"time"

	"go-payroll/internal/employee"
	employeesalaryerrors "go-payroll/internal/employeesalary/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_salary_service.go -destination=mock/employee_salary_service_mock.go -package=mock
type Service interface {
	Update(ctx context.Context, employeeID string, req UpdateSalaryRequest) (SalaryRevisionResponse, error)
	History(ctx context.Context, employeeID string) ([]SalaryRevisionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

// Update replaces the employee's salary structure and records a revision in
// the same transaction. Payslips generated before the change keep the
// amounts they were computed with.
func (s *service) Update(ctx context.Context, employeeID string, req UpdateSalaryRequest) (SalaryRevisionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	effective := req.EffectiveDate
	if effective == "" {
		effective = s.now().Format("2006-01-02")
	} else if d, err := time.Parse("2006-01-02", effective); err == nil && d.After(s.now().AddDate(1, 0, 0)) {
		return SalaryRevisionResponse{}, employeesalaryerrors.ErrEffectiveDateInFuture
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryRevisionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure := employee.SalaryStructure{
		BasicSalary:      req.BasicSalary,
		HRA:              req.HRA,
		DA:               req.DA,
		SpecialAllowance: req.SpecialAllowance,
	}
	if err := qtx.UpdateStructure(ctx, employeeID, structure); err != nil {
		log.Warn("update salary structure failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SalaryRevisionResponse{}, mapRepositoryError(err)
	}

	rev := &SalaryRevision{
		ID:               uuid.New(),
		EmployeeID:       employeeID,
		BasicSalary:      req.BasicSalary,
		HRA:              req.HRA,
		DA:               req.DA,
		SpecialAllowance: req.SpecialAllowance,
		EffectiveDate:    effective,
		ChangedBy:        contextutil.GetUserID(ctx),
	}
	if err := qtx.CreateRevision(ctx, rev); err != nil {
		log.Error("create salary revision failed", zap.String("employee_id", employeeID), zap.Error(err))
		return SalaryRevisionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryRevisionResponse{}, err
	}

	log.Info("salary structure updated",
		zap.String("employee_id", employeeID),
		zap.Int64("gross", rev.Gross()),
	)
	return mapToResponse(*rev), nil
}

func (s *service) History(ctx context.Context, employeeID string) ([]SalaryRevisionResponse, error) {
	revs, err := s.repo.FindRevisions(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]SalaryRevisionResponse, len(revs))
	for i, r := range revs {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(r SalaryRevision) SalaryRevisionResponse {
	return SalaryRevisionResponse{
		ID:               r.ID.String(),
		EmployeeID:       r.EmployeeID,
		BasicSalary:      r.BasicSalary,
		HRA:              r.HRA,
		DA:               r.DA,
		SpecialAllowance: r.SpecialAllowance,
		Gross:            r.Gross(),
		EffectiveDate:    r.EffectiveDate,
		ChangedBy:        r.ChangedBy,
	}
}
