package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-payroll/internal/domain"
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (EmployeeResponse, error)
	Update(ctx context.Context, actor domain.Actor, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	EnsureAdmin(ctx context.Context, password string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested", zap.String("name", req.Name))

	seq, err := s.counter.GetNextValue(ctx, counter.TypeEmployeeID)
	if err != nil {
		log.Error("create employee generate id failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:                fmt.Sprintf("EMP%03d", seq),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Role:              req.Role,
		Department:        req.Department,
		JoinDate:          req.JoinDate,
		PAN:               req.PAN,
		BankAccountNumber: req.BankAccountNumber,
		PFAccountNumber:   req.PFAccountNumber,
		ESINumber:         req.ESINumber,
		BasicSalary:       req.BasicSalary,
		HRA:               req.HRA,
		DA:                req.DA,
		SpecialAllowance:  req.SpecialAllowance,
		AppRole:           AppRoleEmployee,
	}
	if req.AppRole != "" {
		empl.AppRole = req.AppRole
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			log.Error("create employee hash password failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		empl.PasswordHash = hash
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("create employee success", zap.String("employee_id", empl.ID))

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, 0, len(empls))
		for _, e := range empls {
			resp = append(resp, EmployeeOption{ID: e.ID, Name: e.Name, Department: e.Department})
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, data, time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (EmployeeResponse, error) {
	if id == "" {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if !actor.CanAccess(id) {
		return EmployeeResponse{}, apperror.ErrForbidden
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	actor domain.Actor,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update employee requested", zap.String("employee_id", id))

	if !actor.CanAccess(id) {
		return EmployeeResponse{}, apperror.ErrForbidden
	}
	if !actor.IsAdmin() && req.touchesPrivilegedFields() {
		log.Warn("update employee privileged field rejected", zap.String("employee_id", id))
		return EmployeeResponse{}, employeeerrors.ErrPrivilegedFieldUpdate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		log.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := applyUpdate(empl, req); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if id == AdminID {
		return employeeerrors.ErrCannotDeleteAdmin
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		log.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// EnsureAdmin creates the bootstrap admin record when it is missing and
// restores its admin role otherwise. Calling it repeatedly is safe.
func (s *service) EnsureAdmin(ctx context.Context, password string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByID(ctx, AdminID)
	switch {
	case err == nil:
		changed := false
		if existing.AppRole != AppRoleAdmin {
			existing.AppRole = AppRoleAdmin
			changed = true
		}
		if existing.PasswordHash == "" && password != "" {
			hash, err := hashPassword(password)
			if err != nil {
				return err
			}
			existing.PasswordHash = hash
			changed = true
		}
		if !changed {
			return nil
		}
		if err := qtx.Update(ctx, existing); err != nil {
			return mapRepositoryError(err)
		}
	case errors.Is(mapRepositoryError(err), employeeerrors.ErrEmployeeNotFound):
		admin := &Employee{
			ID:      AdminID,
			Name:    AdminName,
			Email:   AdminEmail,
			AppRole: AppRoleAdmin,
		}
		if password != "" {
			hash, err := hashPassword(password)
			if err != nil {
				return err
			}
			admin.PasswordHash = hash
		}
		if err := qtx.Create(ctx, admin); err != nil {
			return mapRepositoryError(err)
		}
	default:
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("bootstrap admin ensured", zap.String("employee_id", AdminID))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func applyUpdate(empl *Employee, req UpdateEmployeeRequest) error {
	setString(&empl.Name, req.Name)
	setString(&empl.Email, req.Email)
	setString(&empl.Phone, req.Phone)
	setString(&empl.Role, req.Role)
	setString(&empl.Department, req.Department)
	setString(&empl.JoinDate, req.JoinDate)
	setString(&empl.PAN, req.PAN)
	setString(&empl.BankAccountNumber, req.BankAccountNumber)
	setString(&empl.PFAccountNumber, req.PFAccountNumber)
	setString(&empl.ESINumber, req.ESINumber)
	setString(&empl.AppRole, req.AppRole)

	if req.BasicSalary != nil {
		empl.BasicSalary = req.BasicSalary
	}
	if req.HRA != nil {
		empl.HRA = req.HRA
	}
	if req.DA != nil {
		empl.DA = req.DA
	}
	if req.SpecialAllowance != nil {
		empl.SpecialAllowance = req.SpecialAllowance
	}

	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return err
		}
		empl.PasswordHash = hash
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                empl.ID,
		Name:              empl.Name,
		Email:             empl.Email,
		Phone:             empl.Phone,
		Role:              empl.Role,
		Department:        empl.Department,
		JoinDate:          empl.JoinDate,
		PAN:               empl.PAN,
		BankAccountNumber: empl.BankAccountNumber,
		PFAccountNumber:   empl.PFAccountNumber,
		ESINumber:         empl.ESINumber,
		BasicSalary:       empl.BasicSalary,
		HRA:               empl.HRA,
		DA:                empl.DA,
		SpecialAllowance:  empl.SpecialAllowance,
		AppRole:           empl.AppRole,
		CreatedAt:         empl.CreatedAt,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, 0, len(empls))
	for _, e := range empls {
		res = append(res, mapToResponse(e))
	}
	return res
}
