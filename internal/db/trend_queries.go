package db

import (
	"context"
	"fmt"
	"time"

	"github.com/m-calder/llmcost-dashboard-tui/internal/logger"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

// GetDailyCosts returns per-day cost and token totals for the window,
// oldest day first, for trend charts. Days with no events are absent;
// chart rendering decides how to handle gaps.
func (db *DB) GetDailyCosts(start, end time.Time, scope string) ([]models.DailyCost, error) {
	query := `
		SELECT
			strftime('%Y-%m-%d', timestamp) as day,
			COALESCE(SUM(input_cost_micro + output_cost_micro + cache_read_cost_micro + cache_write_cost_micro), 0),
			COALESCE(SUM(input_tokens + output_tokens + cache_read_tokens + cache_write_tokens), 0),
			COUNT(*)
		FROM usage_events
		WHERE timestamp >= ? AND timestamp <= ?
		  AND (? = '' OR scope = ?)
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := db.QueryContext(context.Background(), query,
		start.UTC().Format(sqlTimeFormat),
		end.UTC().Format(sqlTimeFormat),
		scope, scope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily costs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var daily []models.DailyCost
	for rows.Next() {
		var d models.DailyCost
		var dayStr string

		if err := rows.Scan(&dayStr, &d.CostMicroUSD, &d.Tokens, &d.Events); err != nil {
			return nil, fmt.Errorf("failed to scan daily cost: %w", err)
		}

		d.Date, _ = time.Parse("2006-01-02", dayStr)
		daily = append(daily, d)
	}

	return daily, rows.Err()
}

// GetScopes returns the distinct tenant scopes present in the database.
func (db *DB) GetScopes() ([]string, error) {
	rows, err := db.QueryContext(context.Background(),
		"SELECT DISTINCT scope FROM usage_events ORDER BY scope")
	if err != nil {
		return nil, fmt.Errorf("failed to query scopes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var scopes []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan scope: %w", err)
		}
		scopes = append(scopes, s)
	}

	return scopes, rows.Err()
}
