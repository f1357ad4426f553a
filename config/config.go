package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamkick/teamkick/pkg/logger"
)

type Config struct {
	App struct {
		Env         string
		Port        string
		FrontendURL string
	}
	DB struct {
		URL string
	}
	Auth struct {
		SessionSecret            string
		AccessTokenExpiryMinutes int
		RefreshTokenExpiryDays   int
	}
	Mail struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
}

// Global DB instance, set by ConnectDB via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, relying on system environment variables")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8080")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	cfg.DB.URL = getEnv("DATABASE_URL", "")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.Auth.SessionSecret = getEnv("SESSION_SECRET", "")
	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if len(cfg.Auth.SessionSecret) < 32 {
		logger.Warn().Msg("SESSION_SECRET is shorter than 32 characters, use a longer secret in production")
	}

	var err error
	cfg.Auth.AccessTokenExpiryMinutes, err = getEnvAsInt("ACCESS_TOKEN_EXPIRY_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRY_MINUTES: %w", err)
	}
	cfg.Auth.RefreshTokenExpiryDays, err = getEnvAsInt("REFRESH_TOKEN_EXPIRY_DAYS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRY_DAYS: %w", err)
	}

	cfg.Mail.Host = getEnv("SMTP_HOST", "")
	cfg.Mail.Port, err = getEnvAsInt("SMTP_PORT", 587)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.Mail.Username = getEnv("SMTP_USER", "")
	cfg.Mail.Password = getEnv("SMTP_PASSWORD", "")
	cfg.Mail.From = getEnv("EMAIL_FROM", "no-reply@teamkick.app")

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes the database connection and sets the global DB handle.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.App.Env == "development" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DB.URL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	logger.Info().Msg("connected to database")
	return gormDB, nil
}

// Initialize loads configuration and connects to the database. Call once from main.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		if _, err := ConnectDB(cfg); err != nil {
			loadErr = fmt.Errorf("failed to connect to database: %w", err)
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
func GetConfig() *Config {
	if appConfig == nil {
		logger.Fatal().Msg("configuration not loaded, call config.Initialize() first")
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
