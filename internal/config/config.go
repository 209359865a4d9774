package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the self-service check-in window and the
// auto-checkout sweep cutoff, all in organizational local hours.
type AttendanceConfig struct {
	WindowStartHour  int // inclusive
	WindowEndHour    int // exclusive
	AutoCheckoutHour int // local hour at which the forgotten-checkout sweep fires
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "presensia"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	windowStart, err := strconv.Atoi(getEnv("ATTENDANCE_WINDOW_START_HOUR", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_WINDOW_START_HOUR: %w", err)
	}
	windowEnd, err := strconv.Atoi(getEnv("ATTENDANCE_WINDOW_END_HOUR", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_WINDOW_END_HOUR: %w", err)
	}
	autoCheckoutHour, err := strconv.Atoi(getEnv("ATTENDANCE_AUTO_CHECKOUT_HOUR", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_AUTO_CHECKOUT_HOUR: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WindowStartHour:  windowStart,
		WindowEndHour:    windowEnd,
		AutoCheckoutHour: autoCheckoutHour,
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
	if c.Attendance.WindowStartHour < 0 || c.Attendance.WindowStartHour > 23 {
		return fmt.Errorf("ATTENDANCE_WINDOW_START_HOUR must be 0-23")
	}
	if c.Attendance.WindowEndHour < 1 || c.Attendance.WindowEndHour > 24 {
		return fmt.Errorf("ATTENDANCE_WINDOW_END_HOUR must be 1-24")
	}
	if c.Attendance.WindowStartHour >= c.Attendance.WindowEndHour {
		return fmt.Errorf("attendance window start must be before end")
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
