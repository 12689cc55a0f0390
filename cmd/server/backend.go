package main

import (
	"fmt"
	"net/http"
	"time"

	"meetingsManagement/internal/auth"
	"meetingsManagement/internal/backend"
	"meetingsManagement/internal/config"
	"meetingsManagement/internal/db"
)

// openBackend returns the backend selected by configuration and a func
// releasing its resources.
func openBackend(cfg *config.Config) (backend.Backend, func(), error) {
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	switch cfg.Backend.Mode {
	case config.BackendRemote:
		client := &http.Client{Timeout: 5 * time.Second}
		return backend.NewRemote(cfg.Backend.URL, cfg.Backend.AnonKey, verifier, client), func() {}, nil
	default:
		d, err := db.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		return backend.NewLocal(d, verifier), func() { _ = d.Close() }, nil
	}
}
