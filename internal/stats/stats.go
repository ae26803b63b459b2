// Package stats computes per-product summary statistics over a price
// record window.
package stats

import (
	"math"

	"pvpulse/internal/catalog"
	"pvpulse/pkg/contracts/domain"
)

// ComputeProductStats summarizes the records belonging to one catalog
// product. The product's raw label is resolved through the matcher against
// the labels present in the records; ok is false when no observation
// matches (the NoData state, a normal outcome rather than an error).
//
// All ratio results are defined at the edges: a single observation yields a
// zero latest delta, and a zero first or previous price yields a zero
// percentage instead of a division by zero. Extremum dates are the first
// chronological occurrence of the extreme value.
func ComputeProductStats(records domain.Dataset, product domain.CatalogProduct, matcher *catalog.Matcher) (domain.PriceStats, bool) {
	matched := matcher.MatchLabel(product.Name, records.ProductLabels())

	var filtered []domain.PriceRecord
	for _, r := range records {
		if r.Product == matched {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return domain.PriceStats{}, false
	}

	s := domain.PriceStats{
		Product:      product.Name,
		MatchedLabel: matched,
		Observations: len(filtered),
		Highest:      filtered[0].Price,
		HighestDate:  filtered[0].Date,
		Lowest:       filtered[0].Price,
		LowestDate:   filtered[0].Date,
	}

	var sum float64
	for _, r := range filtered {
		sum += r.Price
		// Strict comparisons keep the first occurrence on ties.
		if r.Price > s.Highest {
			s.Highest = r.Price
			s.HighestDate = r.Date
		}
		if r.Price < s.Lowest {
			s.Lowest = r.Price
			s.LowestDate = r.Date
		}
	}
	s.Average = math.Round(sum / float64(len(filtered)))

	last := filtered[len(filtered)-1].Price
	if len(filtered) >= 2 {
		previous := filtered[len(filtered)-2].Price
		s.LatestDelta = last - previous
		if previous != 0 {
			s.LatestDeltaPct = s.LatestDelta / previous * 100
		}
	}

	first := filtered[0].Price
	s.PeriodChange = last - first
	if first != 0 {
		s.PeriodChangePct = s.PeriodChange / first * 100
	}

	return s, true
}
