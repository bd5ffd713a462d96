package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go-payroll/internal/archive"
	"go-payroll/internal/delivery"
	"go-payroll/internal/payroll"
	"go-payroll/internal/shared/connection"
)

const connectRetries = 5

// Config is read from the environment. cmd/* load .env first.
type Config struct {
	DB            connection.DBConfig
	RedisAddr     string
	KafkaBroker   string
	AdminPassword string
	Port          string
	RunMigrations bool

	SnowflakeNode int64
	RenderTimeout time.Duration
	SMTPTimeout   time.Duration
	AutoEmail     bool

	SMTP           delivery.SMTPConfig
	S3             archive.S3Config
	LogoPath       string
	PublicBaseURL  string
	CompanyName    string
	CompanyTagline string
}

func LoadConfig() Config {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	cfg := Config{
		DB: connection.DBConfig{
			Driver:   strings.ToLower(os.Getenv("DB_DRIVER")),
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     os.Getenv("DB_PORT"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Port:          envOr("PORT", "3000"),
		RunMigrations: envBool("RUN_MIGRATIONS_ON_START"),

		SnowflakeNode: envInt("SNOWFLAKE_NODE", 1),
		RenderTimeout: envDuration("RENDER_TIMEOUT", payroll.DefaultRenderTimeout),
		SMTPTimeout:   envDuration("SMTP_TIMEOUT", payroll.DefaultSendTimeout),
		AutoEmail:     envBool("AUTO_EMAIL_PAYSLIPS"),

		SMTP: delivery.SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     port,
			User:     os.Getenv("SMTP_USER"),
			Pass:     os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
			Insecure: envBool("SMTP_INSECURE"),
		},
		S3: archive.S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
		LogoPath:       os.Getenv("LOGO_PATH"),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
		CompanyName:    os.Getenv("COMPANY_NAME"),
		CompanyTagline: os.Getenv("COMPANY_TAGLINE"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func envInt(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(os.Getenv(key)), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

// envDuration accepts Go durations ("20s") or a plain number of milliseconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
