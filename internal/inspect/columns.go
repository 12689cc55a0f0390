// Package inspect holds one-shot diagnostics run against the backend.
package inspect

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"meetingsManagement/internal/backend"
	"meetingsManagement/internal/logging"
)

// DefaultTable is the table inspected when none is given.
const DefaultTable = "event_vehicles"

// RowSampler reads one row of a table.
type RowSampler interface {
	SampleRow(ctx context.Context, table string) (*backend.Row, error)
}

// Columns prints the column names of one row of table to w, or a notice when
// the table has no rows. Failures are logged and returned.
func Columns(ctx context.Context, src RowSampler, table string, w io.Writer, logger *zap.Logger) error {
	logger = logging.OrNop(logger)
	if strings.TrimSpace(table) == "" {
		table = DefaultTable
	}
	row, err := src.SampleRow(ctx, table)
	if err != nil {
		logger.Error("error fetching data", zap.String("table", table), zap.Error(err))
		return err
	}
	if row == nil || len(row.Columns) == 0 {
		_, err = fmt.Fprintf(w, "No data found in %s to check columns.\n", table)
		return err
	}
	_, err = fmt.Fprintf(w, "Columns: %s\n", strings.Join(row.Columns, ", "))
	return err
}
