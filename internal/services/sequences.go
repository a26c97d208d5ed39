package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var serialTables = []string{"user", "current_setting", "future_setting", "detected_license_plate", "congestion"}

// ResetSequences moves each PostgreSQL serial sequence past the largest
// stored id so generated ids do not collide with explicitly inserted ones.
// SQLite picks max(id)+1 on its own.
func ResetSequences(ctx context.Context, db *sqlx.DB) error {
	if db.DriverName() == "sqlite3" {
		return nil
	}
	for _, table := range serialTables {
		_, err := db.ExecContext(ctx, fmt.Sprintf(`
SELECT setval(pg_get_serial_sequence('"%[1]s"', 'id'), COALESCE((SELECT MAX("id") FROM "%[1]s"), 0) + 1, false)
`, table))
		if err != nil {
			return WrapError(err, "reset sequence for "+table)
		}
	}
	return nil
}
