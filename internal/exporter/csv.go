package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "pvpulse/internal/errors"
	"pvpulse/pkg/contracts/domain"
)

// Exporter writes record windows and statistics reports under a base
// directory.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

// New creates an exporter rooted at dir.
func New(dir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		dir:    dir,
		logger: logger.With(slog.String("component", "exporter")),
	}
}

// recordHeader is the canonical column set, matching the source feed's
// Vietnamese headers.
var recordHeader = []string{"Ngày", "Mặt hàng", "Giá (VND)"}

// WriteRecordsCSV writes a record window to a CSV file. The UTF-8 BOM keeps
// the Vietnamese headers intact when the file is opened in Excel.
func (e *Exporter) WriteRecordsCSV(ctx context.Context, filename string, records domain.Dataset) (string, error) {
	path := filepath.Join(e.dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create export directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create CSV export", err)
	}
	defer file.Close()

	if _, err := file.WriteString("\uFEFF"); err != nil {
		return "", apperrors.NewStorageError("failed to write BOM", err)
	}

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(recordHeader); err != nil {
		return "", apperrors.NewStorageError("failed to write CSV header", err)
	}
	for _, r := range records {
		row := []string{r.Date.String(), r.Product, formatPrice(r.Price)}
		if err := w.Write(row); err != nil {
			return "", apperrors.NewStorageError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperrors.NewStorageError("failed to flush CSV export", err)
	}

	e.logger.InfoContext(ctx, "wrote records CSV",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return path, nil
}

// statsHeader is the column set of the statistics report.
var statsHeader = []string{
	"Product", "MatchedLabel", "Observations",
	"Highest", "HighestDate", "Lowest", "LowestDate", "Average",
	"LatestDelta", "LatestDeltaPct", "PeriodChange", "PeriodChangePct",
}

// WriteStatsCSV writes per-product statistics to a CSV file. Products in
// the NoData state are skipped.
func (e *Exporter) WriteStatsCSV(ctx context.Context, filename string, stats []domain.PriceStats) (string, error) {
	path := filepath.Join(e.dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create export directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create CSV export", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(statsHeader); err != nil {
		return "", apperrors.NewStorageError("failed to write CSV header", err)
	}
	for _, s := range stats {
		row := []string{
			s.Product,
			s.MatchedLabel,
			fmt.Sprintf("%d", s.Observations),
			formatPrice(s.Highest),
			s.HighestDate.String(),
			formatPrice(s.Lowest),
			s.LowestDate.String(),
			formatPrice(s.Average),
			formatPrice(s.LatestDelta),
			formatPct(s.LatestDeltaPct),
			formatPrice(s.PeriodChange),
			formatPct(s.PeriodChangePct),
		}
		if err := w.Write(row); err != nil {
			return "", apperrors.NewStorageError("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperrors.NewStorageError("failed to flush CSV export", err)
	}

	e.logger.InfoContext(ctx, "wrote stats CSV",
		slog.String("path", path),
		slog.Int("products", len(stats)))

	return path, nil
}
