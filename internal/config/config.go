package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	Attendance AttendanceConfig
	Mail       MailQueueConfig
}

type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// AttendanceConfig holds the attendance policy: the expected arrival cutoff,
// the nominal departure time and the standard number of work hours per day.
// Times are HH:MM, interpreted on the event's UTC calendar date.
type AttendanceConfig struct {
	ArrivalTime       string
	DepartureTime     string
	StandardWorkHours float64
}

// MailQueueConfig controls the in-process notification dispatcher.
type MailQueueConfig struct {
	Workers     int
	BufferSize  int
	MaxAttempts int
	BackoffBase string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timeconnect"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@timeconnect.local"),
		FromName: getEnv("SMTP_FROM_NAME", "TimeConnect"),
	}

	standardHours, err := strconv.ParseFloat(getEnv("ATTENDANCE_STANDARD_WORK_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_STANDARD_WORK_HOURS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ArrivalTime:       getEnv("ATTENDANCE_ARRIVAL_TIME", "09:00"),
		DepartureTime:     getEnv("ATTENDANCE_DEPARTURE_TIME", "17:00"),
		StandardWorkHours: standardHours,
	}

	mailWorkers, err := strconv.Atoi(getEnv("MAIL_QUEUE_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_QUEUE_WORKERS: %w", err)
	}
	mailBuffer, err := strconv.Atoi(getEnv("MAIL_QUEUE_BUFFER", "128"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_QUEUE_BUFFER: %w", err)
	}
	mailAttempts, err := strconv.Atoi(getEnv("MAIL_QUEUE_MAX_ATTEMPTS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_QUEUE_MAX_ATTEMPTS: %w", err)
	}

	config.Mail = MailQueueConfig{
		Workers:     mailWorkers,
		BufferSize:  mailBuffer,
		MaxAttempts: mailAttempts,
		BackoffBase: getEnv("MAIL_QUEUE_BACKOFF_BASE", "5s"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.ArrivalTime == "" {
		return fmt.Errorf("ATTENDANCE_ARRIVAL_TIME is required")
	}
	if c.Attendance.StandardWorkHours <= 0 {
		return fmt.Errorf("ATTENDANCE_STANDARD_WORK_HOURS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
