package usage

import (
	"testing"
	"time"

	"github.com/m-calder/llmcost-dashboard-tui/internal/db"
	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()

	database, err := db.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("db.New failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	svc := New(database, "", time.Minute)
	t.Cleanup(func() { svc.Close() })

	return svc, database
}

func insertEvent(t *testing.T, database *db.DB, ts time.Time, input, output int64) {
	t.Helper()

	event := &models.UsageEvent{
		Timestamp:       ts,
		Scope:           "acme",
		Model:           "claude-sonnet-4",
		InputTokens:     input,
		OutputTokens:    output,
		InputCostMicro:  input * 3,
		OutputCostMicro: output * 15,
	}
	if err := database.InsertUsageEvent(event); err != nil {
		t.Fatalf("InsertUsageEvent failed: %v", err)
	}
}

func TestService_GetBatch(t *testing.T) {
	svc, database := newTestService(t)
	insertEvent(t, database, time.Now(), 1000, 500)

	records, err := svc.GetBatch(models.Window24Hours)
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}
	if len(records) != len(models.Categories) {
		t.Fatalf("GetBatch returned %d records, want %d", len(records), len(models.Categories))
	}

	byCategory := make(map[models.Category]models.CategoryRecord)
	for _, r := range records {
		byCategory[r.Category] = r
	}

	if got := byCategory[models.CategoryInput].Count; got != 1000 {
		t.Errorf("Input count = %d, want 1000", got)
	}
	if got := byCategory[models.CategoryOutput].CostMicroUSD; got != 7500 {
		t.Errorf("Output cost = %d, want 7500", got)
	}
}

func TestService_GetBatch_WindowFilter(t *testing.T) {
	svc, database := newTestService(t)
	insertEvent(t, database, time.Now(), 1000, 0)
	insertEvent(t, database, time.Now().AddDate(0, 0, -3), 9000, 0)

	records, err := svc.GetBatch(models.Window24Hours)
	if err != nil {
		t.Fatalf("GetBatch failed: %v", err)
	}

	var count int64
	for _, r := range records {
		count += r.Count
	}
	if count != 1000 {
		t.Errorf("24h token count = %d, want 1000", count)
	}
}

func TestService_GetDailyCosts(t *testing.T) {
	svc, database := newTestService(t)
	insertEvent(t, database, time.Now(), 1000, 500)
	insertEvent(t, database, time.Now().AddDate(0, 0, -1), 2000, 0)

	days, err := svc.GetDailyCosts(models.Window7Days)
	if err != nil {
		t.Fatalf("GetDailyCosts failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("GetDailyCosts returned %d days, want 2", len(days))
	}
	if !days[0].Date.Before(days[1].Date) {
		t.Error("Daily costs should be in ascending date order")
	}
}

func TestService_GetTotals(t *testing.T) {
	svc, database := newTestService(t)
	insertEvent(t, database, time.Now(), 1000, 500)

	totals, err := svc.GetTotals(models.Window24Hours)
	if err != nil {
		t.Fatalf("GetTotals failed: %v", err)
	}
	if totals.Tokens != 1500 {
		t.Errorf("Tokens = %d, want 1500", totals.Tokens)
	}
	if totals.Events != 1 {
		t.Errorf("Events = %d, want 1", totals.Events)
	}
}

func TestService_WatcherEmitsDataChanged(t *testing.T) {
	svc, database := newTestService(t)

	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	insertEvent(t, database, time.Now(), 100, 50)

	select {
	case event := <-svc.Events():
		if event.Type != EventDataChanged {
			t.Errorf("Event type = %v, want EventDataChanged", event.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for data change event")
	}
}

func TestService_CloseIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
