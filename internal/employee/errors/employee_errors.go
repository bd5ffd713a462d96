package employeeerrors

import (
	"go-payroll/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrPrivilegedFieldUpdate = apperror.New(
		apperror.CodeForbidden,
		"Only an admin can change salary or app role",
		http.StatusForbidden,
	)
	ErrCannotDeleteAdmin = apperror.New(
		apperror.CodeInvalidState,
		"The bootstrap admin cannot be deleted",
		http.StatusConflict,
	)
)
