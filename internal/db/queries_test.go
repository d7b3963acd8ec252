package db

import (
	"testing"
	"time"

	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

func TestInsertUsageEvent(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	event := &models.UsageEvent{
		Scope:              "team-a",
		Model:              "claude-3-opus",
		RequestID:          "req-123",
		InputTokens:        100,
		OutputTokens:       200,
		CacheReadTokens:    50,
		CacheWriteTokens:   25,
		InputCostMicro:     1_500,
		OutputCostMicro:    6_000,
		CacheReadCostMicro: 150,
		DurationMs:         150,
	}

	if err := db.InsertUsageEvent(event); err != nil {
		t.Fatalf("InsertUsageEvent() failed: %v", err)
	}

	if event.ID == 0 {
		t.Error("InsertUsageEvent() should set ID")
	}
}

func TestInsertUsageEvent_WithTimestamp(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	now := time.Now().Add(-1 * time.Hour)
	event := &models.UsageEvent{
		Scope:     "team-a",
		Model:     "claude-3-opus",
		Timestamp: now,
	}

	if err := db.InsertUsageEvent(event); err != nil {
		t.Fatalf("InsertUsageEvent() failed: %v", err)
	}

	if !event.Timestamp.Equal(now) {
		t.Errorf("Timestamp changed, got %v, want %v", event.Timestamp, now)
	}
}

func TestGetCategoryTotals(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	events := []models.UsageEvent{
		{Scope: "team-a", Model: "claude-3-opus", InputTokens: 500, OutputTokens: 100, InputCostMicro: 7_500, OutputCostMicro: 3_000},
		{Scope: "team-a", Model: "claude-3-haiku", InputTokens: 250, OutputTokens: 150, CacheReadTokens: 75, InputCostMicro: 500, OutputCostMicro: 750, CacheReadCostMicro: 40},
	}
	for i := range events {
		if err := db.InsertUsageEvent(&events[i]); err != nil {
			t.Fatalf("InsertUsageEvent() failed: %v", err)
		}
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	records, err := db.GetCategoryTotals(start, end, "team-a")
	if err != nil {
		t.Fatalf("GetCategoryTotals() failed: %v", err)
	}

	if len(records) != len(models.Categories) {
		t.Fatalf("got %d records, want %d", len(records), len(models.Categories))
	}

	byCategory := make(map[models.Category]models.CategoryRecord)
	for _, r := range records {
		byCategory[r.Category] = r
	}

	if got := byCategory[models.CategoryInput]; got.Count != 750 || got.CostMicroUSD != 8_000 {
		t.Errorf("input totals = %+v, want count=750 cost=8000", got)
	}
	if got := byCategory[models.CategoryOutput]; got.Count != 250 || got.CostMicroUSD != 3_750 {
		t.Errorf("output totals = %+v, want count=250 cost=3750", got)
	}
	if got := byCategory[models.CategoryCacheRead]; got.Count != 75 || got.CostMicroUSD != 40 {
		t.Errorf("cache_read totals = %+v, want count=75 cost=40", got)
	}
	if got := byCategory[models.CategoryCacheWrite]; got.Count != 0 || got.CostMicroUSD != 0 {
		t.Errorf("cache_write totals = %+v, want zeros", got)
	}
}

func TestGetCategoryTotals_EmptyWindow(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	start := time.Now().Add(-time.Hour)
	end := time.Now()

	records, err := db.GetCategoryTotals(start, end, "")
	if err != nil {
		t.Fatalf("GetCategoryTotals() failed: %v", err)
	}

	for _, r := range records {
		if r.Count != 0 || r.CostMicroUSD != 0 {
			t.Errorf("empty window record %s = %+v, want zeros", r.Category, r)
		}
	}
}

func TestGetCategoryTotals_ScopeFilter(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	events := []models.UsageEvent{
		{Scope: "team-a", Model: "m", InputTokens: 100},
		{Scope: "team-b", Model: "m", InputTokens: 900},
	}
	for i := range events {
		if err := db.InsertUsageEvent(&events[i]); err != nil {
			t.Fatalf("InsertUsageEvent() failed: %v", err)
		}
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	records, err := db.GetCategoryTotals(start, end, "team-b")
	if err != nil {
		t.Fatalf("GetCategoryTotals() failed: %v", err)
	}
	if records[0].Count != 900 {
		t.Errorf("scoped input count = %d, want 900", records[0].Count)
	}

	// Empty scope matches everything.
	records, err = db.GetCategoryTotals(start, end, "")
	if err != nil {
		t.Fatalf("GetCategoryTotals() failed: %v", err)
	}
	if records[0].Count != 1000 {
		t.Errorf("unscoped input count = %d, want 1000", records[0].Count)
	}
}

func TestGetCategoryTotals_WindowFilter(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	old := &models.UsageEvent{
		Scope:       "team-a",
		Model:       "m",
		InputTokens: 500,
		Timestamp:   time.Now().Add(-48 * time.Hour),
	}
	recent := &models.UsageEvent{
		Scope:       "team-a",
		Model:       "m",
		InputTokens: 100,
	}
	for _, e := range []*models.UsageEvent{old, recent} {
		if err := db.InsertUsageEvent(e); err != nil {
			t.Fatalf("InsertUsageEvent() failed: %v", err)
		}
	}

	start := time.Now().Add(-24 * time.Hour)
	end := time.Now().Add(time.Hour)

	records, err := db.GetCategoryTotals(start, end, "team-a")
	if err != nil {
		t.Fatalf("GetCategoryTotals() failed: %v", err)
	}
	if records[0].Count != 100 {
		t.Errorf("windowed input count = %d, want 100", records[0].Count)
	}
}

func TestGetWindowTotals(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	events := []models.UsageEvent{
		{Scope: "team-a", Model: "claude-3-opus", InputTokens: 500, OutputTokens: 500, InputCostMicro: 10_000, OutputCostMicro: 5_000},
		{Scope: "team-a", Model: "claude-3-haiku", InputTokens: 100, OutputTokens: 100, InputCostMicro: 300, OutputCostMicro: 200},
	}
	for i := range events {
		if err := db.InsertUsageEvent(&events[i]); err != nil {
			t.Fatalf("InsertUsageEvent() failed: %v", err)
		}
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)

	totals, err := db.GetWindowTotals(start, end, "team-a")
	if err != nil {
		t.Fatalf("GetWindowTotals() failed: %v", err)
	}

	if totals.Events != 2 {
		t.Errorf("Events = %d, want 2", totals.Events)
	}
	if totals.Tokens != 1200 {
		t.Errorf("Tokens = %d, want 1200", totals.Tokens)
	}
	if totals.CostMicroUSD != 15_500 {
		t.Errorf("CostMicroUSD = %d, want 15500", totals.CostMicroUSD)
	}
	if totals.UniqueModels != 2 {
		t.Errorf("UniqueModels = %d, want 2", totals.UniqueModels)
	}
}

func TestGetRecentEvents(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	for i := 0; i < 5; i++ {
		e := &models.UsageEvent{
			Scope:       "team-a",
			Model:       "m",
			InputTokens: int64(i),
			Timestamp:   time.Now().Add(time.Duration(-i) * time.Minute),
		}
		if err := db.InsertUsageEvent(e); err != nil {
			t.Fatalf("InsertUsageEvent() failed: %v", err)
		}
	}

	events, err := db.GetRecentEvents(3)
	if err != nil {
		t.Fatalf("GetRecentEvents() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	// Newest first.
	if events[0].InputTokens != 0 {
		t.Errorf("first event InputTokens = %d, want 0 (newest)", events[0].InputTokens)
	}
}

func TestGetDailyCosts(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	days := []int{0, 0, 1, 2}
	for _, d := range days {
		e := &models.UsageEvent{
			Scope:          "team-a",
			Model:          "m",
			InputTokens:    100,
			InputCostMicro: 1_000,
			Timestamp:      time.Now().UTC().Add(time.Duration(-d) * 24 * time.Hour),
		}
		if err := db.InsertUsageEvent(e); err != nil {
			t.Fatalf("InsertUsageEvent() failed: %v", err)
		}
	}

	start := time.Now().Add(-7 * 24 * time.Hour)
	end := time.Now().Add(time.Hour)

	daily, err := db.GetDailyCosts(start, end, "team-a")
	if err != nil {
		t.Fatalf("GetDailyCosts() failed: %v", err)
	}

	if len(daily) != 3 {
		t.Fatalf("got %d days, want 3", len(daily))
	}

	// Oldest first, today has two events.
	last := daily[len(daily)-1]
	if last.Events != 2 || last.CostMicroUSD != 2_000 || last.Tokens != 200 {
		t.Errorf("today = %+v, want 2 events, cost 2000, tokens 200", last)
	}

	for i := 1; i < len(daily); i++ {
		if daily[i].Date.Before(daily[i-1].Date) {
			t.Errorf("daily costs not ascending by date: %v before %v", daily[i].Date, daily[i-1].Date)
		}
	}
}

func TestGetScopes(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	for _, scope := range []string{"team-b", "team-a", "team-b"} {
		e := &models.UsageEvent{Scope: scope, Model: "m"}
		if err := db.InsertUsageEvent(e); err != nil {
			t.Fatalf("InsertUsageEvent() failed: %v", err)
		}
	}

	scopes, err := db.GetScopes()
	if err != nil {
		t.Fatalf("GetScopes() failed: %v", err)
	}

	if len(scopes) != 2 || scopes[0] != "team-a" || scopes[1] != "team-b" {
		t.Errorf("GetScopes() = %v, want [team-a team-b]", scopes)
	}
}
