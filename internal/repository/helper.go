package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// dateLayout is the storage format of DATE columns.
const dateLayout = "2006-01-02"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// The SQLite driver hands DATE and DATETIME columns back as RFC3339 once it
// has recognised them, and as the raw stored text otherwise.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339Nano, str)
		if err != nil {
			returnTime, err = time.Parse(time.DateTime, str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
			}
		}
	}
	return returnTime.UTC(), nil
}
