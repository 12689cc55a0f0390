package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SampleRow returns the first row of table as a column -> value map, or nil
// when the table is empty. Column order is returned alongside the map.
func SampleRow(ctx context.Context, db *sql.DB, table string) ([]string, map[string]any, error) {
	if !tableNameRe.MatchString(table) {
		return nil, nil, fmt.Errorf("invalid table name %q", table)
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+table+`" LIMIT 1`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	if !rows.Next() {
		return cols, nil, rows.Err()
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, nil, err
	}
	row := make(map[string]any, len(cols))
	for i, c := range cols {
		if b, ok := vals[i].([]byte); ok {
			row[c] = string(b)
			continue
		}
		row[c] = vals[i]
	}
	return cols, row, rows.Err()
}
