package domain

// PriceRecord is one normalized fuel price observation: the canonical record
// produced by the row parser. Immutable once created; a record only enters a
// Dataset when all three fields were present and the price parsed to a
// finite number.
type PriceRecord struct {
	Date    CalendarDay `json:"date"`
	Product string      `json:"product"`
	Price   float64     `json:"price" validate:"min=0"`
}

// Dataset is the full ordered collection of price records, sorted ascending
// by calendar day with the original row order preserved between equal days.
// Multiple records for the same (day, product) pair are kept in parse order;
// consumers pick deterministically (latest parsed wins). Owned by the store
// and treated as read-only downstream.
type Dataset []PriceRecord

// LastDate returns the maximum calendar day present in the dataset. ok is
// false for an empty dataset or one containing only invalid days.
func (ds Dataset) LastDate() (CalendarDay, bool) {
	var last CalendarDay
	for _, r := range ds {
		if r.Date.IsValid() && (!last.IsValid() || r.Date.After(last)) {
			last = r.Date
		}
	}
	return last, last.IsValid()
}

// ProductLabels returns the distinct raw product labels in first-seen order.
func (ds Dataset) ProductLabels() []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, r := range ds {
		if _, ok := seen[r.Product]; ok {
			continue
		}
		seen[r.Product] = struct{}{}
		labels = append(labels, r.Product)
	}
	return labels
}

// CatalogProduct is a static catalog entry for one tracked fuel product.
// The catalog is externally supplied configuration; the core treats the
// ordered list as fixed input and tolerates catalogs of any length.
type CatalogProduct struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Code  string `yaml:"code" json:"code" validate:"required,alphanum"`
	Color string `yaml:"color" json:"color"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Series is the chart-ready view of a record window: one shared ascending
// label axis of distinct days, and per product a value sequence aligned
// positionally to the labels. A nil entry is an explicit gap, never zero and
// never interpolated.
type Series struct {
	Labels []string              `json:"labels"`
	Values map[string][]*float64 `json:"values"`
}

// PriceStats is the per-product summary over a record window.
type PriceStats struct {
	Product         string      `json:"product"`
	MatchedLabel    string      `json:"matched_label"`
	Observations    int         `json:"observations"`
	Highest         float64     `json:"highest"`
	HighestDate     CalendarDay `json:"highest_date"`
	Lowest          float64     `json:"lowest"`
	LowestDate      CalendarDay `json:"lowest_date"`
	Average         float64     `json:"average"`
	LatestDelta     float64     `json:"latest_delta"`
	LatestDeltaPct  float64     `json:"latest_delta_pct"`
	PeriodChange    float64     `json:"period_change"`
	PeriodChangePct float64     `json:"period_change_pct"`
}
