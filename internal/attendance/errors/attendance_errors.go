package attendanceerrors

import (
	"go-payroll/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be formatted as YYYY-MM",
		http.StatusBadRequest,
	)
	ErrStatusRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Status is required",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidCSV = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance file is not a valid CSV with header employee_id,date,status",
		http.StatusBadRequest,
	)
)
