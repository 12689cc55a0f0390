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

type EventVehicleRepository struct {
	db *sql.DB
}

func NewEventVehicleRepository(db *sql.DB) *EventVehicleRepository {
	return &EventVehicleRepository{db: db}
}

// Create attaches a vehicle to an existing meeting.
func (r *EventVehicleRepository) Create(ctx context.Context, v *models.EventVehicle) (*models.EventVehicle, error) {
	if v == nil {
		return nil, errors.New("event vehicle is nil")
	}
	if strings.TrimSpace(v.MeetingID) == "" {
		return nil, errors.New("meeting_id is required")
	}
	if v.Seats < 0 {
		return nil, errors.New("seats must not be negative")
	}
	if strings.TrimSpace(v.ID) == "" {
		v.ID = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO event_vehicles (id, meeting_id, label, plate, seats, driver) VALUES (?,?,?,?,?,?)`,
		v.ID, v.MeetingID, v.Label, v.Plate, v.Seats, v.Driver)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ListByMeeting returns the vehicles of a meeting ordered by label.
func (r *EventVehicleRepository) ListByMeeting(ctx context.Context, meetingID string) ([]models.EventVehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, meeting_id, label, plate, seats, driver FROM event_vehicles WHERE meeting_id = ? ORDER BY label, id`, meetingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.EventVehicle
	for rows.Next() {
		var v models.EventVehicle
		if err := rows.Scan(&v.ID, &v.MeetingID, &v.Label, &v.Plate, &v.Seats, &v.Driver); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EventVehicleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM event_vehicles WHERE id = ?`, id)
	return err
}
