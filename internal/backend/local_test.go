package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"meetingsManagement/internal/auth"
	"meetingsManagement/internal/testutil"
	"meetingsManagement/models"
)

func TestLocal_Capability(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "localbackend")
	l := NewLocal(d, auth.NewVerifier(testSecret))
	ctx := context.Background()

	_, err := l.Profiles.Create(ctx, &models.Profile{ID: adminID, Role: models.RoleAdmin})
	require.NoError(t, err)

	role, err := l.ProfileRole(ctx, adminID)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, role)

	role, err = l.ProfileRole(ctx, memberID)
	require.NoError(t, err)
	require.Empty(t, role)

	tok := testutil.GenerateAccessToken(t, testSecret, adminID, time.Hour)
	s, err := l.CurrentSession(auth.WithAccessToken(ctx, tok))
	require.NoError(t, err)
	require.Equal(t, adminID, s.User.ID)

	row, err := l.SampleRow(ctx, "event_vehicles")
	require.NoError(t, err)
	require.Nil(t, row)

	for _, start := range []string{"2026-01-01T09:00:00Z", "2026-01-02T09:00:00Z", "2026-01-03T09:00:00Z"} {
		_, err := l.Meetings.Create(ctx, &models.Meeting{Title: "M " + start, StartsAt: start})
		require.NoError(t, err)
	}
	page, next, err := l.ListMeetings(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotEmpty(t, next)
	page, next, err = l.ListMeetings(ctx, 2, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Empty(t, next)

	_, err = l.Vehicles.Create(ctx, &models.EventVehicle{MeetingID: page[0].ID, Label: "Bus"})
	require.NoError(t, err)
	vehicles, err := l.ListEventVehicles(ctx, page[0].ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)

	row, err = l.SampleRow(ctx, "event_vehicles")
	require.NoError(t, err)
	require.Equal(t, "Bus", row.Values["label"])

	m, err := l.GetMeeting(ctx, page[0].ID)
	require.NoError(t, err)
	require.NotNil(t, m)

	_, err = l.SampleRow(ctx, "x; drop")
	require.ErrorIs(t, err, ErrInvalidTable)
}

func TestListMeetings_InvalidPageToken(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "localbadtoken")
	l := NewLocal(d, auth.NewVerifier(testSecret))

	_, _, err := l.ListMeetings(context.Background(), 2, "!!garbage")
	require.ErrorIs(t, err, ErrInvalidPageToken)

	r := newTestRemote(t)
	_, _, err = r.ListMeetings(context.Background(), 2, "!!garbage")
	require.ErrorIs(t, err, ErrInvalidPageToken)
}
