// Package models defines data structures and domain types.
package models

import "time"

// UsageEvent represents one logged LLM request with its per-category
// token counts and costs. Costs are fixed-point micro-USD.
type UsageEvent struct {
	Timestamp           time.Time
	Scope               string
	Model               string
	RequestID           string
	InputTokens         int64
	OutputTokens        int64
	CacheReadTokens     int64
	CacheWriteTokens    int64
	InputCostMicro      int64
	OutputCostMicro     int64
	CacheReadCostMicro  int64
	CacheWriteCostMicro int64
	DurationMs          int
	ID                  int64
}

// TotalTokens returns the token count summed across all categories.
func (e *UsageEvent) TotalTokens() int64 {
	return e.InputTokens + e.OutputTokens + e.CacheReadTokens + e.CacheWriteTokens
}

// TotalCostMicroUSD returns the cost summed across all categories.
func (e *UsageEvent) TotalCostMicroUSD() int64 {
	return e.InputCostMicro + e.OutputCostMicro + e.CacheReadCostMicro + e.CacheWriteCostMicro
}

// DailyCost contains aggregated usage for a single day in trend charts.
type DailyCost struct {
	Date         time.Time
	CostMicroUSD int64
	Tokens       int64
	Events       int
}

// WindowTotals summarizes a reporting window across all categories.
type WindowTotals struct {
	Tokens       int64
	CostMicroUSD int64
	Events       int
	UniqueModels int
}
