package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetingsManagement/models"
)

// defaultRole is assigned to profiles created without an explicit role.
const defaultRole = "member"

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a profile. A missing ID is generated and a missing role
// defaults to 'member'.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if p == nil {
		return nil, errors.New("profile is nil")
	}
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if p.Role == "" {
		p.Role = defaultRole
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `INSERT INTO profiles (id, role, full_name) VALUES (?,?,?)`, p.ID, p.Role, p.FullName); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `SELECT id, role, full_name, created_at FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Role, &p.FullName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetRole returns the role of the profile with the given id, or "" when the
// profile does not exist.
func (r *ProfileRepository) GetRole(ctx context.Context, id string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var role string
	err := r.db.QueryRowContext(ctx, `SELECT role FROM profiles WHERE id = ?`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return role, nil
}

// UpdateRole sets the role for the given profile id.
// Intended for administrative flows and tests.
func (r *ProfileRepository) UpdateRole(ctx context.Context, id, role string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE profiles SET role = ? WHERE id = ?`, role, id)
	return err
}

func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, role, full_name, created_at FROM profiles ORDER BY created_at, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Role, &p.FullName, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
