// Package attribution computes percentage shares for token usage
// batches and orders them for display. Everything in this package is a
// pure computation over an in-memory batch: no I/O, no shared state,
// safe to call concurrently.
package attribution

import (
	"errors"
	"fmt"

	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

// ErrInvalidInput is returned when a record carries a negative count or
// cost. Negative values are a caller contract violation and are
// rejected at the boundary rather than clamped.
var ErrInvalidInput = errors.New("attribution: negative count or cost")

// Annotate computes each record's share of the batch's token total and
// returns a fresh annotated slice of the same length and order. The
// input is never mutated.
//
// The zero-total case is a business rule, not an error: when the sum of
// counts is 0, every percentage is exactly 0. Percentages are kept at
// full float64 precision here; rounding happens only at display time in
// the format package.
func Annotate(records []models.CategoryRecord) ([]models.AnnotatedRecord, error) {
	annotated := make([]models.AnnotatedRecord, 0, len(records))

	var total int64
	for _, r := range records {
		if r.Count < 0 || r.CostMicroUSD < 0 {
			return nil, fmt.Errorf("%w: category %q (count=%d, cost=%d)",
				ErrInvalidInput, r.Category, r.Count, r.CostMicroUSD)
		}
		total += r.Count
	}

	for _, r := range records {
		pct := 0.0
		if total > 0 {
			pct = float64(r.Count) / float64(total) * 100
		}
		annotated = append(annotated, models.AnnotatedRecord{
			CategoryRecord: r,
			Percentage:     pct,
		})
	}

	return annotated, nil
}
