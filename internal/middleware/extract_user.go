package middleware

import (
	"go-payroll/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContextKey string

const (
	ContextUserID     ContextKey = "user_id"
	ContextEmployeeID ContextKey = "employee_id"
	ContextRole       ContextKey = "role"
	ContextRequestID  ContextKey = "request_id"
)

// ActorFromContext returns the caller set by AuthMiddleware. An
// unauthenticated request yields the zero Actor, which can access nothing.
func ActorFromContext(c *gin.Context) domain.Actor {
	return domain.Actor{
		EmployeeID: c.GetString(string(ContextEmployeeID)),
		Role:       c.GetString(string(ContextRole)),
	}
}
