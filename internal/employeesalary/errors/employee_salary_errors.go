package employeesalaryerrors

import (
	"go-payroll/internal/shared/apperror"
	"net/http"
)

var (
	ErrEffectiveDateInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"Effective date cannot be more than a year ahead",
		http.StatusBadRequest,
	)
)
