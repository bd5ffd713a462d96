package app

import (
	"context"

	"go-payroll/internal/attendance"
	"go-payroll/internal/auth"
	"go-payroll/internal/employee"
	"go-payroll/internal/employeesalary"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	inf *Infra,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(inf.Gorm)
	employeeSalaryRepo := employeesalary.NewRepository(inf.Gorm)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, rbac.DefaultPolicies)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := inf.EmployeeService(rdb)
	employeeSalaryService := employeesalary.NewService(inf.SQL, employeeSalaryRepo)
	attendanceService := inf.AttendanceService()
	payrollService, err := inf.PayrollService(ctx)
	if err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandler(payrollService)
	rbacHandler := rbac.NewHandler(rbacService)

	// Idempotency is skipped without redis; a typed nil would defeat the check.
	var idem redis.Cmdable
	if rdb != nil {
		idem = rdb
	}

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, rbacService, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, logger, idem)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
