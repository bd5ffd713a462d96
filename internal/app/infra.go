package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-payroll/internal/archive"
	"go-payroll/internal/attendance"
	"go-payroll/internal/delivery"
	"go-payroll/internal/employee"
	"go-payroll/internal/employeesalary"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/render"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/counter"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the shared connections of one process.
type Infra struct {
	Config Config
	Gorm   *gorm.DB
	SQL    *sql.DB
}

func Connect(cfg Config) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, connectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	return &Infra{Config: cfg, Gorm: gormDB, SQL: sqlDB}, nil
}

func (i *Infra) Close() error {
	return i.SQL.Close()
}

// UsesOutbox reports whether the outbox table is available. Its DDL and
// queries are postgres only.
func (i *Infra) UsesOutbox() bool {
	return i.Gorm.Dialector.Name() == "postgres"
}

// Migrate creates or updates every table the services use.
func (i *Infra) Migrate(ctx context.Context) error {
	log := zap.L().Named("app.migrate")

	err := i.Gorm.WithContext(ctx).AutoMigrate(
		&employee.Employee{},
		&employeesalary.SalaryRevision{},
		&attendance.Attendance{},
		&payroll.Payslip{},
		&payroll.PayslipDocument{},
		&counter.Counter{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if i.UsesOutbox() {
		if _, err := i.SQL.ExecContext(ctx, kafka.OutboxDDL); err != nil {
			return fmt.Errorf("create outbox table: %w", err)
		}
	}

	log.Info("schema migrated", zap.String("dialect", i.Gorm.Dialector.Name()))
	return nil
}

// EnsureAdmin seeds the EMPADMIN account from ADMIN_PASSWORD.
func (i *Infra) EnsureAdmin(ctx context.Context) error {
	return i.EmployeeService(nil).EnsureAdmin(ctx, i.Config.AdminPassword)
}

func (i *Infra) EmployeeService(rdb *redis.Client) employee.Service {
	return employee.NewService(i.SQL, employee.NewRepository(i.Gorm), counter.NewRepository(i.Gorm), rdb)
}

func (i *Infra) AttendanceService() attendance.Service {
	return attendance.NewService(i.SQL, attendance.NewRepository(i.Gorm))
}

// PayrollService wires generation, rendering, delivery and archiving.
// SMTP and S3 are optional: without them email returns UNCONFIGURED and
// rendered PDFs are not archived.
func (i *Infra) PayrollService(ctx context.Context) (payroll.Service, error) {
	cfg := i.Config
	log := zap.L().Named("app.payroll")

	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", cfg.SnowflakeNode, err)
	}

	renderer, err := render.NewRenderer(render.Options{
		CompanyName:    cfg.CompanyName,
		CompanyTagline: cfg.CompanyTagline,
		LogoPath:       cfg.LogoPath,
		PublicBaseURL:  cfg.PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}

	store := archive.NewNopStore()
	if cfg.S3.Bucket != "" {
		store, err = archive.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		log.Info("payslip archive enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	var outbox kafka.OutboxRepository
	if i.UsesOutbox() {
		outbox = kafka.NewOutboxRepository(i.SQL)
	}

	return payroll.NewService(payroll.Deps{
		DB:            i.SQL,
		Repo:          payroll.NewRepository(i.Gorm),
		Employees:     employee.NewRepository(i.Gorm),
		Attendance:    attendance.NewRepository(i.Gorm),
		Outbox:        outbox,
		IDs:           node,
		Renderer:      renderer,
		Sender:        delivery.NewSMTPSender(cfg.SMTP),
		Archive:       store,
		RenderTimeout: cfg.RenderTimeout,
		SendTimeout:   cfg.SMTPTimeout,
	}), nil
}
