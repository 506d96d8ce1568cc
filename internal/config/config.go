package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Operating modes
const (
	ModeProd = "prod"
	ModeTest = "test"
)

// DevJWTSecret is the secret used in test mode when none is configured.
// Production refuses to start with it.
const DevJWTSecret = "dev-secret-key-change-in-production"

// DefaultTestDatabaseURL is the local test database used when TEST_DATABASE_URL is unset.
const DefaultTestDatabaseURL = "postgres://localhost:5432/course_management_test?sslmode=disable"

// Config structure represents the application configuration
type Config struct {
	App struct {
		Mode    string `yaml:"mode" env:"APP_MODE"`
		Name    string `yaml:"name" env:"APP_NAME"`
		Version string `yaml:"version" env:"APP_VERSION"`
	} `yaml:"app"`

	Server struct {
		Port        string   `yaml:"port" env:"PORT"`
		CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_URL"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		Algorithm             string `yaml:"algorithm" env:"JWT_ALGORITHM"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	} `yaml:"auth"`

	Seed struct {
		AdminUsername string `yaml:"admin_username" env:"SEED_ADMIN_USERNAME"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file and
// environment variables, in increasing order of precedence
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// godotenv never overrides variables already present in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	applyModeDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.App.Mode = ModeTest
	config.App.Name = "Course Management"
	config.App.Version = "1.0.0"

	config.Server.Port = "8000"

	config.Database.MaxConns = 10
	config.Database.MinConns = 1
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.Algorithm = "HS256"
	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "coursehub"

	config.Auth.BcryptCost = bcrypt.DefaultCost

	config.Seed.AdminUsername = "admin"
	config.Seed.AdminPassword = "admin123"

	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// applyModeDefaults fills in values whose default depends on the operating mode
func applyModeDefaults(config *Config) {
	config.App.Mode = strings.ToLower(strings.TrimSpace(config.App.Mode))

	if config.Database.URL == "" {
		if config.IsProduction() {
			config.Database.URL = os.Getenv("POSTGRES_URL")
		} else {
			config.Database.URL = GetEnv("TEST_DATABASE_URL", DefaultTestDatabaseURL)
		}
	}

	if config.JWT.Secret == "" && !config.IsProduction() {
		config.JWT.Secret = DevJWTSecret
	}

	if len(config.Server.CORSOrigins) == 0 && !config.IsProduction() {
		config.Server.CORSOrigins = []string{"*"}
	}

	if config.Logging.Level == "" {
		if config.IsProduction() {
			config.Logging.Level = "info"
		} else {
			config.Logging.Level = "debug"
		}
	}
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.App.Mode != ModeProd && config.App.Mode != ModeTest {
		return fmt.Errorf("app mode must be %q or %q, got %q", ModeProd, ModeTest, config.App.Mode)
	}

	if config.Database.URL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or POSTGRES_URL)")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if config.IsProduction() && config.JWT.Secret == DevJWTSecret {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	switch strings.ToUpper(config.JWT.Algorithm) {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported JWT algorithm %q", config.JWT.Algorithm)
	}

	if d, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("JWT access token expiration must be positive")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	if config.Auth.BcryptCost < bcrypt.MinCost || config.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if config.Database.MaxConns < 1 || config.Database.MinConns < 0 || config.Database.MinConns > config.Database.MaxConns {
		return fmt.Errorf("invalid database pool size (min %d, max %d)", config.Database.MinConns, config.Database.MaxConns)
	}

	return nil
}

// IsProduction reports whether the service runs in prod mode
func (c *Config) IsProduction() bool {
	return c.App.Mode == ModeProd
}

// AccessTokenTTL returns the parsed access token lifetime. The value was
// validated by LoadConfig.
func (c *Config) AccessTokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.AccessTokenExpiration)
	return d
}

// String renders the config without secrets, for startup logging
func (c *Config) String() string {
	return fmt.Sprintf("<Config mode=%s port=%s jwt_alg=%s log_level=%s>",
		c.App.Mode, c.Server.Port, c.JWT.Algorithm, c.Logging.Level)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
