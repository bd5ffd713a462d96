package deliveryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrUnconfigured = apperror.New(
		apperror.CodeUnconfigured,
		"SMTP not configured. Set SMTP_HOST, SMTP_USER, SMTP_PASS env vars.",
		http.StatusServiceUnavailable,
	)
	ErrDeliveryFailed = apperror.New(
		apperror.CodeDeliveryFailure,
		"Email failed",
		http.StatusBadGateway,
	)
	ErrInvalidAddress = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid email address",
		http.StatusBadRequest,
	)
)
