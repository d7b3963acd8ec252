package db

import (
	"context"
	"fmt"
)

// FixLegacyTimeFormats normalizes timestamp formats in the database.
// modernc.org/sqlite does not store time.Time in a format compatible
// with SQLite's date/time functions by default, so rows written by
// older collector builds may carry a trailing " +0000 UTC".
func (db *DB) FixLegacyTimeFormats() error {
	query := `UPDATE usage_events
		 SET timestamp = SUBSTR(timestamp, 1, 19)
		 WHERE length(timestamp) > 19 AND timestamp LIKE '% UTC'`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to fix legacy time formats: %w", err)
	}

	return nil
}
