package inspect

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"meetingsManagement/internal/backend"
)

type stubSampler struct {
	row   *backend.Row
	err   error
	table string
}

func (s *stubSampler) SampleRow(_ context.Context, table string) (*backend.Row, error) {
	s.table = table
	return s.row, s.err
}

func TestColumns(t *testing.T) {
	var out bytes.Buffer
	s := &stubSampler{row: &backend.Row{Columns: []string{"id", "meeting_id", "label"}}}
	require.NoError(t, Columns(context.Background(), s, "", &out, nil))
	require.Equal(t, DefaultTable, s.table)
	require.Equal(t, "Columns: id, meeting_id, label\n", out.String())
}

func TestColumns_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Columns(context.Background(), &stubSampler{}, "meetings", &out, nil))
	require.Equal(t, "No data found in meetings to check columns.\n", out.String())
}

func TestColumns_LogsErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	var out bytes.Buffer
	err := Columns(context.Background(), &stubSampler{err: errors.New("boom")}, "event_vehicles", &out, zap.New(core))
	require.Error(t, err)
	require.Empty(t, out.String())
	require.Equal(t, 1, logs.FilterMessage("error fetching data").Len())
}
