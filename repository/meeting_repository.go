package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"meetingsManagement/models"
)

type MeetingRepository struct {
	db *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// normalizeStartsAt stores start times as UTC RFC3339 so that string order
// equals chronological order.
func normalizeStartsAt(s string) (string, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("starts_at: %w", err)
	}
	return t.UTC().Format(time.RFC3339), nil
}

func nullableID(id string) any {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return id
}

// Create inserts a meeting. A missing ID is generated.
func (r *MeetingRepository) Create(ctx context.Context, m *models.Meeting) (*models.Meeting, error) {
	if m == nil {
		return nil, errors.New("meeting is nil")
	}
	if strings.TrimSpace(m.Title) == "" {
		return nil, errors.New("meeting title is required")
	}
	startsAt, err := normalizeStartsAt(m.StartsAt)
	if err != nil {
		return nil, err
	}
	m.StartsAt = startsAt
	if strings.TrimSpace(m.ID) == "" {
		m.ID = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = r.db.ExecContext(ctx, `INSERT INTO meetings (id, title, location, starts_at, created_by) VALUES (?,?,?,?,?)`,
		m.ID, m.Title, m.Location, m.StartsAt, nullableID(m.CreatedBy))
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT id, title, location, starts_at, created_by FROM meetings WHERE id = ?`, id)
	m, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Update overwrites title, location and start of an existing meeting.
func (r *MeetingRepository) Update(ctx context.Context, m *models.Meeting) error {
	if m == nil {
		return errors.New("meeting is nil")
	}
	startsAt, err := normalizeStartsAt(m.StartsAt)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE meetings SET title = ?, location = ?, starts_at = ? WHERE id = ?`,
		m.Title, m.Location, startsAt, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	m.StartsAt = startsAt
	return nil
}

func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	return err
}

// ListPage returns meetings ordered by starts_at asc, id asc.
// Uses keyset pagination: rows strictly after the cursor are returned.
func (r *MeetingRepository) ListPage(ctx context.Context, pageSize int, after *MeetingCursor) ([]models.Meeting, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rows *sql.Rows
	var err error
	if after != nil && after.ID != "" {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, title, location, starts_at, created_by
FROM meetings
WHERE starts_at > ? OR (starts_at = ? AND id > ?)
ORDER BY starts_at ASC, id ASC
LIMIT ?`, after.StartsAt, after.StartsAt, after.ID, pageSize)
	} else {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, title, location, starts_at, created_by
FROM meetings
ORDER BY starts_at ASC, id ASC
LIMIT ?`, pageSize)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(s rowScanner) (*models.Meeting, error) {
	var m models.Meeting
	var createdBy sql.NullString
	if err := s.Scan(&m.ID, &m.Title, &m.Location, &m.StartsAt, &createdBy); err != nil {
		return nil, err
	}
	if createdBy.Valid {
		m.CreatedBy = createdBy.String
	}
	return &m, nil
}
