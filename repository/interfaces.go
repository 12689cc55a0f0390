package repository

import (
	"context"

	"meetingsManagement/models"
)

// ProfileRepositoryI defines operations on Profile entities.
type ProfileRepositoryI interface {
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetRole(ctx context.Context, id string) (string, error)
	UpdateRole(ctx context.Context, id, role string) error
	List(ctx context.Context, limit, offset int) ([]models.Profile, error)
}

// MeetingRepositoryI defines operations on Meeting entities.
type MeetingRepositoryI interface {
	Create(ctx context.Context, m *models.Meeting) (*models.Meeting, error)
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	Update(ctx context.Context, m *models.Meeting) error
	Delete(ctx context.Context, id string) error
	ListPage(ctx context.Context, pageSize int, after *MeetingCursor) ([]models.Meeting, error)
}

// EventVehicleRepositoryI defines operations on EventVehicle entities.
type EventVehicleRepositoryI interface {
	Create(ctx context.Context, v *models.EventVehicle) (*models.EventVehicle, error)
	ListByMeeting(ctx context.Context, meetingID string) ([]models.EventVehicle, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ ProfileRepositoryI      = (*ProfileRepository)(nil)
	_ MeetingRepositoryI      = (*MeetingRepository)(nil)
	_ EventVehicleRepositoryI = (*EventVehicleRepository)(nil)
)
