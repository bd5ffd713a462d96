package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutes mounts /payroll. When rdb is nil the email and bulk
// generation routes run without idempotency keys.
func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
	rdb redis.Cmdable,
) {
	idempotent := func(c *gin.Context) { c.Next() }
	if rdb != nil {
		idempotent = middleware.Idempotency(rdb, logger)
	}

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	payroll.Use(middleware.ContextLogger(logger))
	{
		payroll.POST("/generate/:employeeId", middleware.RBACAuthorize(rbacService, "payroll", "generate"), h.Generate)
		payroll.POST("/generate-all",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			idempotent,
			h.GenerateAll,
		)
		payroll.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "payroll", "list"), h.ListByEmployee)
		payroll.GET("/latest", middleware.RBACAuthorize(rbacService, "payroll", "list"), h.Latest)
		payroll.GET("/view/:payslipId", middleware.RBACAuthorize(rbacService, "payroll", "view"), h.View)
		payroll.POST("/pdf-html/:payslipId",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "pdf"),
			h.PDF,
		)
		payroll.GET("/html/:payslipId",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "html"),
			h.HTML,
		)
		payroll.POST("/email-html/:payslipId",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "payroll", "email"),
			idempotent,
			h.Email,
		)
		payroll.GET("/register.xlsx", middleware.RBACAuthorize(rbacService, "payroll", "export"), h.Register)
	}
}
