package attribution

import (
	"errors"
	"math"
	"testing"

	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

func TestAnnotate_TwoCategories(t *testing.T) {
	records := []models.CategoryRecord{
		{Category: models.CategoryInput, Count: 750, CostMicroUSD: 15_000},
		{Category: models.CategoryOutput, Count: 250, CostMicroUSD: 30_000},
	}

	annotated, err := Annotate(records)
	if err != nil {
		t.Fatalf("Annotate() failed: %v", err)
	}

	if len(annotated) != 2 {
		t.Fatalf("Annotate() returned %d records, want 2", len(annotated))
	}
	if annotated[0].Percentage != 75.0 {
		t.Errorf("input percentage = %v, want 75", annotated[0].Percentage)
	}
	if annotated[1].Percentage != 25.0 {
		t.Errorf("output percentage = %v, want 25", annotated[1].Percentage)
	}
}

func TestAnnotate_ZeroTotal(t *testing.T) {
	records := []models.CategoryRecord{
		{Category: models.CategoryInput, Count: 0},
		{Category: models.CategoryOutput, Count: 0},
	}

	annotated, err := Annotate(records)
	if err != nil {
		t.Fatalf("Annotate() failed: %v", err)
	}

	for _, r := range annotated {
		if r.Percentage != 0 {
			t.Errorf("percentage for %s = %v, want 0", r.Category, r.Percentage)
		}
		if math.IsNaN(r.Percentage) {
			t.Errorf("percentage for %s is NaN", r.Category)
		}
	}
}

func TestAnnotate_Empty(t *testing.T) {
	annotated, err := Annotate(nil)
	if err != nil {
		t.Fatalf("Annotate(nil) failed: %v", err)
	}
	if len(annotated) != 0 {
		t.Errorf("Annotate(nil) returned %d records, want 0", len(annotated))
	}
}

func TestAnnotate_SingleCategory(t *testing.T) {
	annotated, err := Annotate([]models.CategoryRecord{
		{Category: models.CategoryInput, Count: 500, CostMicroUSD: 10_000},
	})
	if err != nil {
		t.Fatalf("Annotate() failed: %v", err)
	}
	if annotated[0].Percentage != 100.0 {
		t.Errorf("percentage = %v, want 100", annotated[0].Percentage)
	}
}

func TestAnnotate_SingleNonZeroAmongZeros(t *testing.T) {
	annotated, err := Annotate([]models.CategoryRecord{
		{Category: models.CategoryInput, Count: 0},
		{Category: models.CategoryOutput, Count: 1234},
		{Category: models.CategoryCacheRead, Count: 0},
	})
	if err != nil {
		t.Fatalf("Annotate() failed: %v", err)
	}

	want := []float64{0, 100, 0}
	for i, r := range annotated {
		if r.Percentage != want[i] {
			t.Errorf("percentage[%d] = %v, want %v", i, r.Percentage, want[i])
		}
	}
}

func TestAnnotate_NegativeCount(t *testing.T) {
	_, err := Annotate([]models.CategoryRecord{
		{Category: models.CategoryInput, Count: -1},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Annotate() error = %v, want ErrInvalidInput", err)
	}
}

func TestAnnotate_NegativeCost(t *testing.T) {
	_, err := Annotate([]models.CategoryRecord{
		{Category: models.CategoryInput, Count: 10, CostMicroUSD: -5},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Annotate() error = %v, want ErrInvalidInput", err)
	}
}

func TestAnnotate_PercentagesSumTo100(t *testing.T) {
	tests := []struct {
		name   string
		counts []int64
	}{
		{"thirds", []int64{333, 667}},
		{"uneven", []int64{1, 2, 4}},
		{"large", []int64{1_234_567, 89, 42_000_000}},
		{"one dominates", []int64{1, 0, 999_999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]models.CategoryRecord, len(tt.counts))
			for i, c := range tt.counts {
				records[i] = models.CategoryRecord{Category: models.Category("c" + string(rune('a'+i))), Count: c}
			}

			annotated, err := Annotate(records)
			if err != nil {
				t.Fatalf("Annotate() failed: %v", err)
			}

			sum := 0.0
			for _, r := range annotated {
				sum += r.Percentage
				if r.Count == 0 && r.Percentage != 0 {
					t.Errorf("zero-count record has percentage %v", r.Percentage)
				}
				if r.Count > 0 && r.Percentage == 0 {
					t.Errorf("non-zero record %s has percentage 0", r.Category)
				}
			}
			if math.Abs(sum-100) > 0.01 {
				t.Errorf("percentages sum to %v, want 100 ± 0.01", sum)
			}
		})
	}
}

func TestAnnotate_DoesNotMutateInput(t *testing.T) {
	records := []models.CategoryRecord{
		{Category: models.CategoryInput, Count: 10, CostMicroUSD: 100},
		{Category: models.CategoryOutput, Count: 20, CostMicroUSD: 200},
	}
	orig := make([]models.CategoryRecord, len(records))
	copy(orig, records)

	if _, err := Annotate(records); err != nil {
		t.Fatalf("Annotate() failed: %v", err)
	}

	for i := range records {
		if records[i] != orig[i] {
			t.Errorf("input record %d mutated: %+v", i, records[i])
		}
	}
}
