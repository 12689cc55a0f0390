package config

import (
	"os"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DB_PATH", "HTTP_ADDRESS", "GRPC_ADDRESS", "JWT_SECRET", "BACKEND_MODE", "BACKEND_URL", "BACKEND_ANON_KEY", "ADMIN_ROLE", "GUARD_ON_ERROR"} {
		// t.Setenv registers restoration; Unsetenv then clears the value.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.GRPC.Address == "" || cfg.HTTP.Address == "" || cfg.Database.Path == "" || cfg.Auth.JWTSecret == "" {
		t.Fatalf("unexpected empty defaults: %+v", cfg)
	}
	if cfg.Backend.Mode != BackendLocal || cfg.Guard.OnError != OnErrorPropagate || cfg.Guard.AdminRole != "admin" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("GRPC_ADDRESS", ":1234")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is not set")
	}
	t.Setenv("JWT_SECRET", "x")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
}

func TestLoad_Validation(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")

	t.Setenv("BACKEND_MODE", "remote")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for remote backend without URL")
	}
	t.Setenv("BACKEND_URL", "https://example.test")
	t.Setenv("BACKEND_ANON_KEY", "anon")
	if _, err := Load(); err != nil {
		t.Fatalf("remote backend: %v", err)
	}

	t.Setenv("GUARD_ON_ERROR", "LOGIN")
	cfg, err := Load()
	if err != nil || cfg.Guard.OnError != OnErrorLogin {
		t.Fatalf("guard policy: %+v err=%v", cfg, err)
	}
	t.Setenv("GUARD_ON_ERROR", "retry")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown guard policy")
	}
}

func TestString_MasksSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Contains(cfg.String(), "super-secret") {
		t.Fatalf("secret leaked: %s", cfg.String())
	}
}
