package app

import (
	"context"
	"net/http"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, prepares the schema and mounts
// every module on router.
func BuildApp(ctx context.Context, router *gin.Engine, cfg Config) (*Infra, error) {
	logger := zap.L().Named("app")

	inf, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("driver", inf.Gorm.Dialector.Name()))

	if cfg.RunMigrations {
		if err := inf.Migrate(ctx); err != nil {
			return nil, err
		}
	}
	if err := inf.EnsureAdmin(ctx); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency keys and option caching disabled")
	}

	router.Use(middleware.RequestID())
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	if err := registerModules(ctx, router, inf, rdb, zap.L()); err != nil {
		return nil, err
	}
	return inf, nil
}
