package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m-calder/llmcost-dashboard-tui/internal/logger"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

const sqlTimeFormat = "2006-01-02 15:04:05"

// InsertUsageEvent logs a usage event to the database.
func (db *DB) InsertUsageEvent(event *models.UsageEvent) error {
	query := `
		INSERT INTO usage_events (
			timestamp, scope, model, request_id,
			input_tokens, output_tokens, cache_read_tokens, cache_write_tokens,
			input_cost_micro, output_cost_micro, cache_read_cost_micro, cache_write_cost_micro,
			duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.UTC().Format(sqlTimeFormat),
		event.Scope,
		event.Model,
		nullString(event.RequestID),
		event.InputTokens,
		event.OutputTokens,
		event.CacheReadTokens,
		event.CacheWriteTokens,
		event.InputCostMicro,
		event.OutputCostMicro,
		event.CacheReadCostMicro,
		event.CacheWriteCostMicro,
		event.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert usage event: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		event.ID = id
	}

	return nil
}

// GetCategoryTotals returns one record per usage category with tokens
// and cost summed over the window. This is the raw batch handed to the
// attribution layer; records come back in canonical category order and
// an empty window yields records with zero counts.
func (db *DB) GetCategoryTotals(start, end time.Time, scope string) ([]models.CategoryRecord, error) {
	query := `
		SELECT
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(cache_read_tokens), 0),
			COALESCE(SUM(cache_write_tokens), 0),
			COALESCE(SUM(input_cost_micro), 0),
			COALESCE(SUM(output_cost_micro), 0),
			COALESCE(SUM(cache_read_cost_micro), 0),
			COALESCE(SUM(cache_write_cost_micro), 0)
		FROM usage_events
		WHERE timestamp >= ? AND timestamp <= ?
		  AND (? = '' OR scope = ?)
	`

	var counts, costs [4]int64
	err := db.QueryRowContext(context.Background(), query,
		start.UTC().Format(sqlTimeFormat),
		end.UTC().Format(sqlTimeFormat),
		scope, scope,
	).Scan(
		&counts[0], &counts[1], &counts[2], &counts[3],
		&costs[0], &costs[1], &costs[2], &costs[3],
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}

	records := make([]models.CategoryRecord, len(models.Categories))
	for i, cat := range models.Categories {
		records[i] = models.CategoryRecord{
			Category:     cat,
			Count:        counts[i],
			CostMicroUSD: costs[i],
		}
	}

	return records, nil
}

// GetWindowTotals returns summary statistics for a window.
func (db *DB) GetWindowTotals(start, end time.Time, scope string) (*models.WindowTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(input_tokens + output_tokens + cache_read_tokens + cache_write_tokens), 0),
			COALESCE(SUM(input_cost_micro + output_cost_micro + cache_read_cost_micro + cache_write_cost_micro), 0),
			COUNT(DISTINCT model)
		FROM usage_events
		WHERE timestamp >= ? AND timestamp <= ?
		  AND (? = '' OR scope = ?)
	`

	var totals models.WindowTotals
	err := db.QueryRowContext(context.Background(), query,
		start.UTC().Format(sqlTimeFormat),
		end.UTC().Format(sqlTimeFormat),
		scope, scope,
	).Scan(&totals.Events, &totals.Tokens, &totals.CostMicroUSD, &totals.UniqueModels)
	if err != nil {
		return nil, fmt.Errorf("failed to query window totals: %w", err)
	}

	return &totals, nil
}

// GetRecentEvents returns the most recent usage events.
func (db *DB) GetRecentEvents(limit int) ([]models.UsageEvent, error) {
	query := `
		SELECT id, timestamp, scope, model, request_id,
			   input_tokens, output_tokens, cache_read_tokens, cache_write_tokens,
			   input_cost_micro, output_cost_micro, cache_read_cost_micro, cache_write_cost_micro,
			   duration_ms
		FROM usage_events
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var events []models.UsageEvent
	for rows.Next() {
		var e models.UsageEvent
		var reqID sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.Scope,
			&e.Model,
			&reqID,
			&e.InputTokens,
			&e.OutputTokens,
			&e.CacheReadTokens,
			&e.CacheWriteTokens,
			&e.InputCostMicro,
			&e.OutputCostMicro,
			&e.CacheReadCostMicro,
			&e.CacheWriteCostMicro,
			&e.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage event: %w", err)
		}

		e.RequestID = reqID.String
		events = append(events, e)
	}

	return events, rows.Err()
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
