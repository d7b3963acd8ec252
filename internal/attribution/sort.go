package attribution

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m-calder/llmcost-dashboard-tui/internal/models"
)

// ErrInvalidSortKey is returned when a caller requests a sort key
// outside the allowed set.
var ErrInvalidSortKey = errors.New("attribution: invalid sort key")

// SortKey identifies the column a batch is ordered by.
type SortKey string

const (
	// SortByCount orders by token count.
	SortByCount SortKey = "count"
	// SortByCost orders by attributed cost.
	SortByCost SortKey = "cost"
	// SortByPercentage orders by derived percentage share.
	SortByPercentage SortKey = "percentage"
	// SortByCategory orders lexicographically by category identifier.
	SortByCategory SortKey = "category"
)

// ParseSortKey validates a caller-supplied key string.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByCount, SortByCost, SortByPercentage, SortByCategory:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// Direction is the current ordering of a sorted batch.
type Direction int

const (
	// DirectionNone means the original input order is in effect.
	DirectionNone Direction = iota
	// DirectionDesc orders highest value first.
	DirectionDesc
	// DirectionAsc orders lowest value first.
	DirectionAsc
)

// String returns the display indicator for a direction.
func (d Direction) String() string {
	switch d {
	case DirectionDesc:
		return "▼"
	case DirectionAsc:
		return "▲"
	default:
		return ""
	}
}

// SortState is the explicit sort descriptor passed between the view and
// the sort engine. It lives as a value in the caller, not as hidden
// component state, so the toggle cycle is testable on its own.
type SortState struct {
	Key       SortKey
	Direction Direction
}

// Toggle is the pure reducer for the tri-state sort cycle. Toggling an
// unsorted batch on key K starts descending; the same key again flips
// to ascending; a third press returns to the unsorted original order.
// A different key always starts a fresh descending sort.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key != key || s.Direction == DirectionNone {
		return SortState{Key: key, Direction: DirectionDesc}
	}
	if s.Direction == DirectionDesc {
		return SortState{Key: key, Direction: DirectionAsc}
	}
	return SortState{Key: key, Direction: DirectionNone}
}

// ApplySort returns the records ordered per the given state. The input
// slice is never reordered in place; callers keep their original batch
// so that DirectionNone can restore the pre-sort order exactly. Ties on
// the active key preserve original relative order (stable sort).
func ApplySort(records []models.AnnotatedRecord, state SortState) ([]models.AnnotatedRecord, error) {
	out := make([]models.AnnotatedRecord, len(records))
	copy(out, records)

	if state.Direction == DirectionNone {
		return out, nil
	}

	var less func(a, b models.AnnotatedRecord) bool
	switch state.Key {
	case SortByCount:
		less = func(a, b models.AnnotatedRecord) bool { return a.Count < b.Count }
	case SortByCost:
		less = func(a, b models.AnnotatedRecord) bool { return a.CostMicroUSD < b.CostMicroUSD }
	case SortByPercentage:
		less = func(a, b models.AnnotatedRecord) bool { return a.Percentage < b.Percentage }
	case SortByCategory:
		less = func(a, b models.AnnotatedRecord) bool { return a.Category < b.Category }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, state.Key)
	}

	if state.Direction == DirectionDesc {
		inner := less
		less = func(a, b models.AnnotatedRecord) bool { return inner(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out, nil
}
