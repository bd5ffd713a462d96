package employeesalary

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	salaries := r.Group("/employees/:id/salary")
	salaries.Use(middleware.AuthMiddleware())
	salaries.Use(middleware.ContextLogger(logger))
	{
		salaries.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.Update,
		)
		salaries.GET("/history",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.History,
		)
	}
}
