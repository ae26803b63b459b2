// Package series aligns per-product price observations onto a shared date
// axis for charting.
package series

import (
	"sort"

	"pvpulse/internal/catalog"
	"pvpulse/pkg/contracts/domain"
)

// Build produces one time-aligned numeric series per catalog product over
// the given records.
//
// The label axis is the set of distinct days present in the records, sorted
// ascending; several records on one day contribute a single label. Each
// product resolves its raw label through the matcher once, then fills one
// value slot per label: when multiple records hit the same (day, label)
// cell the last one in ascending-date-then-parse order wins, and a day with
// no observation stays nil. Gaps are explicit absence, never zero and never
// interpolated.
func Build(records domain.Dataset, products []domain.CatalogProduct, matcher *catalog.Matcher) domain.Series {
	days := distinctDays(records)

	labels := make([]string, len(days))
	index := make(map[domain.CalendarDay]int, len(days))
	for i, d := range days {
		labels[i] = d.String()
		index[d] = i
	}

	rawLabels := records.ProductLabels()

	values := make(map[string][]*float64, len(products))
	for _, p := range products {
		matched := matcher.MatchLabel(p.Name, rawLabels)

		row := make([]*float64, len(days))
		for _, r := range records {
			if r.Product != matched {
				continue
			}
			if i, ok := index[r.Date]; ok {
				price := r.Price
				row[i] = &price
			}
		}
		values[p.Code] = row
	}

	return domain.Series{Labels: labels, Values: values}
}

// distinctDays collects the distinct valid days present in records, sorted
// ascending.
func distinctDays(records domain.Dataset) []domain.CalendarDay {
	seen := make(map[domain.CalendarDay]struct{}, len(records))
	var days []domain.CalendarDay
	for _, r := range records {
		if !r.Date.IsValid() {
			continue
		}
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		days = append(days, r.Date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
