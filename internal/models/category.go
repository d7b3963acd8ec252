// Package models defines data structures and domain types.
package models

// Category classifies token usage for cost attribution. The set is
// extensible; the constants below are the categories the collector
// currently records.
type Category string

const (
	// CategoryInput counts tokens sent in prompts.
	CategoryInput Category = "input"
	// CategoryOutput counts tokens generated by the model.
	CategoryOutput Category = "output"
	// CategoryCacheRead counts tokens served from prompt cache.
	CategoryCacheRead Category = "cache_read"
	// CategoryCacheWrite counts tokens written to prompt cache.
	CategoryCacheWrite Category = "cache_write"
)

// Categories lists the known categories in their canonical display order.
var Categories = []Category{
	CategoryInput,
	CategoryOutput,
	CategoryCacheRead,
	CategoryCacheWrite,
}

// String returns the category identifier.
func (c Category) String() string {
	return string(c)
}

// Label returns the human-readable display name for a category.
func (c Category) Label() string {
	switch c {
	case CategoryInput:
		return "Input"
	case CategoryOutput:
		return "Output"
	case CategoryCacheRead:
		return "Cache Read"
	case CategoryCacheWrite:
		return "Cache Write"
	default:
		return string(c)
	}
}

// CategoryRecord holds the raw usage attributed to one category within
// a reporting window. Cost is stored as fixed-point micro-USD so that
// aggregation never accumulates floating-point drift.
type CategoryRecord struct {
	Category     Category
	Count        int64
	CostMicroUSD int64
}

// AnnotatedRecord is a CategoryRecord augmented with its derived share
// of the batch's token total. Percentage is never persisted; it is
// recomputed for every fresh batch.
type AnnotatedRecord struct {
	CategoryRecord
	Percentage float64
}

// Batch is the full set of category records returned for one query:
// one reporting window, one scope. A batch is built fresh per request
// and never mutated after annotation.
type Batch struct {
	Scope   string
	Window  ReportWindow
	Records []AnnotatedRecord
}

// TotalCount returns the sum of token counts across the batch.
func (b Batch) TotalCount() int64 {
	var total int64
	for _, r := range b.Records {
		total += r.Count
	}
	return total
}

// TotalCostMicroUSD returns the summed cost across the batch.
func (b Batch) TotalCostMicroUSD() int64 {
	var total int64
	for _, r := range b.Records {
		total += r.CostMicroUSD
	}
	return total
}
