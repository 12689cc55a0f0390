package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateStatusAndRollback(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCmd(t, "migrate", "status")
	require.NoError(t, err)
	require.Equal(t, []string{"0001", "0002"}, strings.Fields(out))

	_, err = runCmd(t, "migrate", "rollback")
	require.NoError(t, err)
}

func TestColumns_EmptyTable(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cols.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCmd(t, "columns")
	require.NoError(t, err)
	require.Equal(t, "No data found in event_vehicles to check columns.\n", out)
}

func TestStrictRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := runCmd(t, "--strict", "migrate", "status")
	require.Error(t, err)
}
