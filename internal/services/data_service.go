package services

import (
	"context"
	"fmt"
	"log/slog"

	"pvpulse/internal/catalog"
	apperrors "pvpulse/internal/errors"
	"pvpulse/internal/series"
	"pvpulse/internal/stats"
	"pvpulse/internal/store"
	"pvpulse/internal/window"
	"pvpulse/pkg/contracts/domain"
)

// ViewState is the immutable selection a request operates on: a range token
// and optionally one product. It is recomputed per call rather than held as
// mutable service state.
type ViewState struct {
	Range   string `json:"range"`
	Product string `json:"product,omitempty"`
}

// DataService orchestrates the pipeline for the HTTP surface: store →
// range filter → series builder / statistics engine.
type DataService struct {
	store    *store.Store
	products []domain.CatalogProduct
	matcher  *catalog.Matcher
	logger   *slog.Logger
}

// NewDataService creates the orchestrating service over a store and a
// product catalog.
func NewDataService(st *store.Store, products []domain.CatalogProduct, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		store:    st,
		products: products,
		matcher:  catalog.NewMatcher(),
		logger:   logger.With(slog.String("component", "data_service")),
	}
}

// Products returns the catalog in its configured order.
func (s *DataService) Products(ctx context.Context) []domain.CatalogProduct {
	return s.products
}

// Records returns the record window selected by the range token.
func (s *DataService) Records(ctx context.Context, rangeToken string) (domain.Dataset, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return window.FilterByRange(ds, rangeToken), nil
}

// Series builds the chart-ready series for the selected window.
func (s *DataService) Series(ctx context.Context, view ViewState) (domain.Series, error) {
	records, err := s.Records(ctx, view.Range)
	if err != nil {
		return domain.Series{}, err
	}
	return series.Build(records, s.products, s.matcher), nil
}

// ProductStats summarizes one catalog product over the selected window.
// The product may be addressed by its catalog name or its short code.
// A product with no matching observations yields ErrNoData (wrapped).
func (s *DataService) ProductStats(ctx context.Context, view ViewState) (domain.PriceStats, error) {
	product, ok := s.lookupProduct(view.Product)
	if !ok {
		return domain.PriceStats{}, apperrors.NewNotFoundError(fmt.Sprintf("product %q", view.Product))
	}

	records, err := s.Records(ctx, view.Range)
	if err != nil {
		return domain.PriceStats{}, err
	}

	st, ok := stats.ComputeProductStats(records, product, s.matcher)
	if !ok {
		return domain.PriceStats{}, fmt.Errorf("%w: %s", apperrors.ErrNoData, product.Name)
	}
	return st, nil
}

// AllStats summarizes every catalog product over the selected window,
// skipping products in the NoData state.
func (s *DataService) AllStats(ctx context.Context, rangeToken string) ([]domain.PriceStats, error) {
	records, err := s.Records(ctx, rangeToken)
	if err != nil {
		return nil, err
	}

	result := make([]domain.PriceStats, 0, len(s.products))
	for _, p := range s.products {
		if st, ok := stats.ComputeProductStats(records, p, s.matcher); ok {
			result = append(result, st)
		}
	}
	return result, nil
}

// LastUpdate returns the most recent observation day in the dataset.
func (s *DataService) LastUpdate(ctx context.Context) (domain.CalendarDay, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return domain.CalendarDay{}, err
	}
	last, ok := ds.LastDate()
	if !ok {
		return domain.CalendarDay{}, apperrors.ErrDataUnavailable
	}
	return last, nil
}

// Reload drops the cache and re-reads the source, returning the new record
// count.
func (s *DataService) Reload(ctx context.Context) (int, error) {
	ds, err := s.store.Reload(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "dataset reloaded", slog.Int("records", len(ds)))
	return len(ds), nil
}

// lookupProduct finds a catalog entry by name or code.
func (s *DataService) lookupProduct(nameOrCode string) (domain.CatalogProduct, bool) {
	for _, p := range s.products {
		if p.Name == nameOrCode || p.Code == nameOrCode {
			return p, true
		}
	}
	return domain.CatalogProduct{}, false
}
