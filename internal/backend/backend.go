// Package backend abstracts the hosted data/auth service the application
// reads sessions, profiles and rows from.
package backend

import (
	"context"
	"errors"

	"meetingsManagement/models"
)

var (
	// ErrUnauthorized is returned when the backend rejects the caller's credentials.
	ErrUnauthorized = errors.New("backend: unauthorized")
	// ErrInvalidTable is returned for table names that are not plain identifiers.
	ErrInvalidTable = errors.New("backend: invalid table name")
	// ErrInvalidPageToken is returned for page tokens that do not decode to a cursor.
	ErrInvalidPageToken = errors.New("backend: invalid page token")
)

// Backend is everything the application shell reads from the hosted service.
// Missing rows are reported as nil results, not errors.
type Backend interface {
	// CurrentSession returns the session for the access token in ctx, or nil.
	CurrentSession(ctx context.Context) (*models.Session, error)
	// ProfileRole returns the role of the profile keyed by userID, or "" when
	// no profile exists.
	ProfileRole(ctx context.Context, userID string) (string, error)
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	// ListMeetings returns up to limit meetings after the page token and the
	// token of the next page ("" on the last page).
	ListMeetings(ctx context.Context, limit int, pageToken string) ([]models.Meeting, string, error)
	ListEventVehicles(ctx context.Context, meetingID string) ([]models.EventVehicle, error)
	// SampleRow returns the column names and values of one row of table.
	// The row is nil when the table is empty.
	SampleRow(ctx context.Context, table string) (*Row, error)
}

// Row is a single table row with its column order preserved.
type Row struct {
	Columns []string
	Values  map[string]any
}
