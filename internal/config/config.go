package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Backend modes.
const (
	BackendLocal  = "local"  // SQLite rendition of the hosted backend
	BackendRemote = "remote" // hosted REST backend
)

// Guard failure policies.
const (
	OnErrorPropagate = "propagate"
	OnErrorLogin     = "login"
	OnErrorHome      = "home"
)

// devJWTSecret is only used by LoadWithDefaults.
const devJWTSecret = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Auth     AuthConfig
	Backend  BackendConfig
	Guard    GuardConfig
	Web      WebConfig
	Log      LogConfig
}

// DatabaseConfig contains settings of the local SQLite backend.
type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"meetings.db"`
}

// HTTPConfig contains the application shell listener settings.
type HTTPConfig struct {
	Address string `env:"HTTP_ADDRESS" envDefault:":8080"`
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string `env:"GRPC_ADDRESS" envDefault:":50051"`
}

// AuthConfig contains access-token verification settings.
type AuthConfig struct {
	JWTSecret   string `env:"JWT_SECRET"`
	TokenCookie string `env:"TOKEN_COOKIE" envDefault:"sb-access-token"`
}

// BackendConfig selects and addresses the data backend.
type BackendConfig struct {
	Mode    string `env:"BACKEND_MODE" envDefault:"local"`
	URL     string `env:"BACKEND_URL"`
	AnonKey string `env:"BACKEND_ANON_KEY"`
}

// GuardConfig controls the navigation guard.
type GuardConfig struct {
	AdminRole  string `env:"ADMIN_ROLE" envDefault:"admin"`
	OnError    string `env:"GUARD_ON_ERROR" envDefault:"propagate"`
	RoutesFile string `env:"ROUTES_FILE"`
}

// WebConfig contains application shell settings.
type WebConfig struct {
	StaticDir string `env:"STATIC_DIR" envDefault:"web/static"`
	Locale    string `env:"LOCALE" envDefault:"fr-FR"`
	Timezone  string `env:"TIMEZONE" envDefault:"Europe/Paris"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// Load loads configuration from environment variables and requires a JWT secret.
func Load() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but falls back to a development JWT secret.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Backend.Mode = strings.ToLower(strings.TrimSpace(cfg.Backend.Mode))
	cfg.Guard.OnError = strings.ToLower(strings.TrimSpace(cfg.Guard.OnError))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend.Mode {
	case BackendLocal:
	case BackendRemote:
		if strings.TrimSpace(c.Backend.URL) == "" || strings.TrimSpace(c.Backend.AnonKey) == "" {
			return fmt.Errorf("BACKEND_URL and BACKEND_ANON_KEY are required when BACKEND_MODE=remote")
		}
	default:
		return fmt.Errorf("invalid BACKEND_MODE %q", c.Backend.Mode)
	}
	switch c.Guard.OnError {
	case OnErrorPropagate, OnErrorLogin, OnErrorHome:
	default:
		return fmt.Errorf("invalid GUARD_ON_ERROR %q", c.Guard.OnError)
	}
	if strings.TrimSpace(c.Guard.AdminRole) == "" {
		return fmt.Errorf("ADMIN_ROLE must not be empty")
	}
	return nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, Backend: %s %s, Guard: on_error=%s admin_role=%s, Auth: *** (masked) ***}",
		c.Database.Path, c.HTTP.Address, c.GRPC.Address, c.Backend.Mode, c.Backend.URL, c.Guard.OnError, c.Guard.AdminRole)
}
