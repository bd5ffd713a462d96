package attendance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, logger *zap.Logger) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "list"),
			h.GetAll,
		)
		attendance.POST("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "attendance", "upsert"),
			h.Upsert,
		)
		attendance.POST("/import",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "attendance", "import"),
			h.Import,
		)
	}
}
