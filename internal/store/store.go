// Package store owns the parsed price dataset: single load, cached
// thereafter, with concurrent load requests coalesced onto one read of the
// source.
package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"pvpulse/internal/dataprocessing"
	apperrors "pvpulse/internal/errors"
	"pvpulse/internal/infrastructure"
	"pvpulse/pkg/contracts/domain"
)

// Store loads, caches and hands out the observation dataset. The cache is
// written once per load cycle under the mutex, after the whole
// parse-and-sort step completed; a load requested while another is in
// flight joins the pending one instead of re-reading the source.
type Store struct {
	source  Source
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics

	group singleflight.Group

	mu      sync.RWMutex
	dataset domain.Dataset
	loaded  bool
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics attaches pipeline metrics instruments.
func WithMetrics(m *infrastructure.PipelineMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a store over the given source.
func New(source Source, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		source: source,
		logger: logger.With(slog.String("component", "store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the dataset, reading and parsing the source on first use.
// Subsequent calls return the cached dataset until Invalidate. Load fails
// with ErrDataUnavailable (wrapped) when the source is unreadable or zero
// rows survive parsing; it never partially populates the cache.
func (s *Store) Load(ctx context.Context) (domain.Dataset, error) {
	s.mu.RLock()
	if s.loaded {
		ds := s.dataset
		s.mu.RUnlock()
		return ds, nil
	}
	s.mu.RUnlock()

	v, err, shared := s.group.Do(s.source.Name(), func() (interface{}, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "load coalesced with in-flight request")
	}
	return v.(domain.Dataset), nil
}

// Invalidate clears the cache; the next Load re-reads the source.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.dataset = nil
	s.loaded = false
	s.mu.Unlock()
	s.logger.Debug("dataset cache invalidated")
}

// Reload invalidates and loads in one step.
func (s *Store) Reload(ctx context.Context) (domain.Dataset, error) {
	s.Invalidate()
	return s.Load(ctx)
}

// load performs the actual read-parse-sort-cache cycle.
func (s *Store) load(ctx context.Context) (domain.Dataset, error) {
	// Another goroutine may have completed a load between the caller's
	// cache miss and this single-flight execution.
	s.mu.RLock()
	if s.loaded {
		ds := s.dataset
		s.mu.RUnlock()
		return ds, nil
	}
	s.mu.RUnlock()

	s.logger.InfoContext(ctx, "loading dataset", slog.String("source", s.source.Name()))
	s.countLoad(ctx, "attempt")

	r, err := s.source.Open(ctx)
	if err != nil {
		s.countLoad(ctx, "error")
		return nil, err
	}
	defer r.Close()

	result, err := dataprocessing.ParseCSV(ctx, r, s.logger)
	if err != nil {
		s.countLoad(ctx, "error")
		return nil, apperrors.NewDataUnavailableError(s.source.Name(), err)
	}
	if s.metrics != nil {
		s.metrics.RowsParsedTotal.Add(ctx, int64(len(result.Records)))
		s.metrics.RowsRejectedTotal.Add(ctx, int64(result.Rejected))
	}
	if len(result.Records) == 0 {
		s.countLoad(ctx, "empty")
		return nil, apperrors.NewDataUnavailableError(s.source.Name(), nil).
			WithContext("rows_read", result.RowsRead)
	}

	ds := result.Records
	// Stable: original row order breaks ties between equal days, so
	// last-parsed wins downstream stays deterministic.
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Date.Compare(ds[j].Date) < 0
	})

	s.mu.Lock()
	s.dataset = ds
	s.loaded = true
	s.mu.Unlock()

	s.countLoad(ctx, "ok")
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("records", len(ds)),
		slog.Int("rejected", result.Rejected))

	return ds, nil
}

func (s *Store) countLoad(ctx context.Context, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.DatasetLoadsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
