package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be formatted as YYYY-MM",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payslip not found",
		http.StatusNotFound,
	)
	ErrRenderFailed = apperror.New(
		apperror.CodeDeliveryFailure,
		"PDF generation failed",
		http.StatusBadGateway,
	)
	ErrNoValidRecipient = apperror.New(
		apperror.CodeInvalidInput,
		"Employee does not have a valid email address in the system",
		http.StatusBadRequest,
	)
)
