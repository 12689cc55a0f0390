package backend

import (
	"context"
	"database/sql"
	"fmt"

	"meetingsManagement/internal/auth"
	"meetingsManagement/models"
	"meetingsManagement/repository"
)

// Local serves the backend capability from the SQLite repositories.
// Sessions are verified with the same JWT secret the hosted service uses.
type Local struct {
	Sessions *auth.Verifier
	DB       *sql.DB
	Profiles repository.ProfileRepositoryI
	Meetings repository.MeetingRepositoryI
	Vehicles repository.EventVehicleRepositoryI
}

// NewLocal wires the repositories over d.
func NewLocal(d *sql.DB, sessions *auth.Verifier) *Local {
	return &Local{
		Sessions: sessions,
		DB:       d,
		Profiles: repository.NewProfileRepository(d),
		Meetings: repository.NewMeetingRepository(d),
		Vehicles: repository.NewEventVehicleRepository(d),
	}
}

func (l *Local) CurrentSession(ctx context.Context) (*models.Session, error) {
	return l.Sessions.CurrentSession(ctx)
}

func (l *Local) ProfileRole(ctx context.Context, userID string) (string, error) {
	role, err := l.Profiles.GetRole(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get profile role: %w", err)
	}
	return role, nil
}

func (l *Local) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	m, err := l.Meetings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

func (l *Local) ListMeetings(ctx context.Context, limit int, pageToken string) ([]models.Meeting, string, error) {
	after, err := repository.DecodeCursor(pageToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidPageToken, err)
	}
	list, err := l.Meetings.ListPage(ctx, limit, after)
	if err != nil {
		return nil, "", fmt.Errorf("list meetings: %w", err)
	}
	var next string
	if limit > 0 && len(list) == limit {
		next = repository.CursorAfter(list[len(list)-1]).Encode()
	}
	return list, next, nil
}

func (l *Local) ListEventVehicles(ctx context.Context, meetingID string) ([]models.EventVehicle, error) {
	list, err := l.Vehicles.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list event vehicles: %w", err)
	}
	return list, nil
}

func (l *Local) SampleRow(ctx context.Context, table string) (*Row, error) {
	if !validTable(table) {
		return nil, ErrInvalidTable
	}
	cols, values, err := repository.SampleRow(ctx, l.DB, table)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", table, err)
	}
	if values == nil {
		return nil, nil
	}
	return &Row{Columns: cols, Values: values}, nil
}
