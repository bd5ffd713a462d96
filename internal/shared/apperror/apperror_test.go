package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-payroll/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status and code", func(t *testing.T) {
		err := apperror.New(apperror.CodeNotFound, "payslip not found", http.StatusNotFound)

		out := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusNotFound, out.Status)
		assert.Equal(t, apperror.CodeNotFound, out.Code)
		assert.Equal(t, "payslip not found", out.Message)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		out := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, out.Status)
		assert.Equal(t, apperror.CodeInternalError, out.Code)
		assert.NotContains(t, out.Message, "pq")
	})

	t.Run("wrapped cause is exposed as details", func(t *testing.T) {
		sentinel := apperror.New(apperror.CodeDeliveryFailure, "email failed", http.StatusBadGateway)
		err := sentinel.WithCause(errors.New("dial tcp: timeout"))

		out := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadGateway, out.Status)
		assert.Equal(t, "dial tcp: timeout", out.Details)
	})
}

func TestWithCause_KeepsSentinelIdentity(t *testing.T) {
	sentinel := apperror.New(apperror.CodeUnconfigured, "smtp not configured", http.StatusServiceUnavailable)
	cause := errors.New("SMTP_HOST missing")

	err := sentinel.WithCause(cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperror.Is(err, apperror.CodeUnconfigured))
	assert.False(t, apperror.Is(cause, apperror.CodeUnconfigured))
}
