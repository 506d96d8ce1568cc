package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// clearEnv unsets every variable LoadConfig reads so tests start from defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_MODE", "APP_NAME", "APP_VERSION", "PORT", "CORS_ORIGINS",
		"DATABASE_URL", "POSTGRES_URL", "TEST_DATABASE_URL",
		"DB_MAX_CONNS", "DB_MIN_CONNS", "DB_CONN_MAX_LIFETIME",
		"JWT_SECRET", "JWT_ALGORITHM", "JWT_ACCESS_TOKEN_EXPIRATION", "JWT_ISSUER",
		"BCRYPT_COST", "SEED_ADMIN_USERNAME", "SEED_ADMIN_PASSWORD",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
	// Keep godotenv away from any .env in the package directory
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadConfigTestModeDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.Mode != ModeTest {
		t.Errorf("mode = %q, want %q", cfg.App.Mode, ModeTest)
	}
	if cfg.Database.URL != DefaultTestDatabaseURL {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	if cfg.JWT.Secret != DevJWTSecret {
		t.Errorf("jwt secret = %q, want dev secret", cfg.JWT.Secret)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"*"}) {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Server.Port != "8000" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if got := cfg.AccessTokenTTL().Hours(); got != 24 {
		t.Errorf("token ttl = %vh, want 24h", got)
	}
}

func TestLoadConfigTestDatabaseURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_DATABASE_URL", "postgres://ci/test")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.URL != "postgres://ci/test" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
}

func TestLoadConfigProductionRequirements(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing database url",
			env:     map[string]string{"APP_MODE": "prod", "JWT_SECRET": "s3cret"},
			wantErr: "database URL is required",
		},
		{
			name:    "missing secret",
			env:     map[string]string{"APP_MODE": "prod", "POSTGRES_URL": "postgres://db/prod"},
			wantErr: "JWT secret is required",
		},
		{
			name:    "dev secret",
			env:     map[string]string{"APP_MODE": "prod", "POSTGRES_URL": "postgres://db/prod", "JWT_SECRET": DevJWTSecret},
			wantErr: "must be changed in production",
		},
		{
			name:    "unknown mode",
			env:     map[string]string{"APP_MODE": "staging"},
			wantErr: "app mode must be",
		},
		{
			name:    "bad algorithm",
			env:     map[string]string{"JWT_ALGORITHM": "RS256"},
			wantErr: "unsupported JWT algorithm",
		},
		{
			name:    "bad expiration",
			env:     map[string]string{"JWT_ACCESS_TOKEN_EXPIRATION": "-1h"},
			wantErr: "must be positive",
		},
		{
			name:    "bad bcrypt cost",
			env:     map[string]string{"BCRYPT_COST": "99"},
			wantErr: "bcrypt cost",
		},
		{
			name:    "non-numeric pool size",
			env:     map[string]string{"DB_MAX_CONNS": "many"},
			wantErr: "invalid integer format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			if err == nil {
				t.Fatalf("LoadConfig() succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_MODE", "PROD")
	t.Setenv("POSTGRES_URL", "postgres://db/prod")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,,")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatalf("IsProduction() = false")
	}
	if cfg.Database.URL != "postgres://db/prod" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("cors origins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
	if strings.Contains(cfg.String(), "a-real-secret") {
		t.Errorf("String() leaks the secret: %s", cfg)
	}
}

func TestLoadConfigFileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9000"
database:
  url: postgres://file/db
jwt:
  algorithm: HS512
  access_token_expiration: 30m
auth:
  bcrypt_cost: 4
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "9100")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port = %q, env should win over file", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://file/db" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	if cfg.JWT.Algorithm != "HS512" {
		t.Errorf("algorithm = %q", cfg.JWT.Algorithm)
	}
	if cfg.AccessTokenTTL().Minutes() != 30 {
		t.Errorf("ttl = %v", cfg.AccessTokenTTL())
	}
	if cfg.Auth.BcryptCost != 4 {
		t.Errorf("bcrypt cost = %d", cfg.Auth.BcryptCost)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	clearEnv(t)
	// clearEnv moved us into an empty temp dir
	if err := os.WriteFile(".env", []byte("JWT_ISSUER=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("JWT_ISSUER") })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.JWT.Issuer != "from-dotenv" {
		t.Errorf("issuer = %q, want value from .env", cfg.JWT.Issuer)
	}
}
