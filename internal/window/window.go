// Package window derives trailing calendar windows of a price dataset.
package window

import (
	"sort"

	"pvpulse/pkg/contracts/domain"
)

// Range is a named trailing-window token. Tokens are case-sensitive; any
// unrecognized token behaves as RangeAll.
type Range string

const (
	Range1M  Range = "1M"
	Range3M  Range = "3M"
	Range6M  Range = "6M"
	Range1Y  Range = "1Y"
	Range3Y  Range = "3Y"
	RangeAll Range = "ALL"
)

// Ranges lists the recognized tokens in display order.
func Ranges() []Range {
	return []Range{Range1M, Range3M, Range6M, Range1Y, Range3Y, RangeAll}
}

// ParseRange maps a token to its Range; anything unrecognized is RangeAll.
func ParseRange(token string) Range {
	switch Range(token) {
	case Range1M, Range3M, Range6M, Range1Y, Range3Y, RangeAll:
		return Range(token)
	default:
		return RangeAll
	}
}

// start computes the inclusive lower bound of the window anchored at last.
// Month and year arithmetic clamps to the last valid day of the target
// month, so a window anchored on 31 March reaches back to 28 (or 29)
// February rather than rolling into March. ok is false for RangeAll.
func (r Range) start(last domain.CalendarDay) (domain.CalendarDay, bool) {
	switch r {
	case Range1M:
		return last.AddMonths(-1), true
	case Range3M:
		return last.AddMonths(-3), true
	case Range6M:
		return last.AddMonths(-6), true
	case Range1Y:
		return last.AddYears(-1), true
	case Range3Y:
		return last.AddYears(-3), true
	default:
		return domain.CalendarDay{}, false
	}
}

// FilterByRange returns the contiguous suffix of the sorted dataset whose
// days fall in [lastDate − offset, lastDate], both bounds inclusive.
// RangeAll (and any unrecognized token) returns every record unmodified in
// order. An empty dataset yields an empty window, never an error.
func FilterByRange(ds domain.Dataset, token string) domain.Dataset {
	if len(ds) == 0 {
		return domain.Dataset{}
	}

	r := ParseRange(token)
	if r == RangeAll {
		return ds
	}

	last, ok := ds.LastDate()
	if !ok {
		return domain.Dataset{}
	}

	start, ok := r.start(last)
	if !ok {
		return ds
	}

	// The dataset is sorted ascending, so the window is the suffix from the
	// first record on or after the start day. Invalid days sort after every
	// valid day, forming a trailing block that stays out of the window.
	from := sort.Search(len(ds), func(i int) bool {
		return !ds[i].Date.Before(start)
	})
	to := sort.Search(len(ds), func(i int) bool {
		return !ds[i].Date.IsValid()
	})
	return ds[from:to]
}
