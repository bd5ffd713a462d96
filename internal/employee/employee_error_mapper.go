package employee

import (
	"errors"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/dberr"

	"gorm.io/gorm"
)

// mapRepositoryError turns storage errors into employee API errors. Email
// and id collisions both surface as ErrEmployeeAlreadyExists.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employeeerrors.ErrEmployeeNotFound
	case dberr.IsUniqueViolation(err, ""):
		return employeeerrors.ErrEmployeeAlreadyExists
	default:
		return err
	}
}
