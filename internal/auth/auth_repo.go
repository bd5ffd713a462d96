package auth

import (
	"context"
	"strings"

	"go-payroll/internal/employee"

	"gorm.io/gorm"
)

type Repository interface {
	FindByLogin(ctx context.Context, login string) (*employee.Employee, error)
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByLogin matches an employee id case-insensitively or an email.
func (r *repository) FindByLogin(ctx context.Context, login string) (*employee.Employee, error) {
	var empl employee.Employee
	err := r.db.WithContext(ctx).
		Where("id = ? OR LOWER(email) = ?", strings.ToUpper(login), strings.ToLower(login)).
		Order("id ASC").
		First(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	var empl employee.Employee
	if err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}
