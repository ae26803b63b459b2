package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "pvpulse/internal/errors"
	"pvpulse/pkg/contracts/domain"
)

// WriteReportXLSX writes a two-sheet workbook: "Prices" pivots the series
// (one row per day, one column per catalog product, blank cells for gaps)
// and "Statistics" carries the per-product summary. Gaps stay blank so a
// chart drawn over the sheet shows them as breaks, not zeros.
func (e *Exporter) WriteReportXLSX(ctx context.Context, filename string, s domain.Series, products []domain.CatalogProduct, stats []domain.PriceStats) (string, error) {
	path := filepath.Join(e.dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create export directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const pricesSheet = "Prices"
	f.SetSheetName("Sheet1", pricesSheet)

	header := []interface{}{"Ngày"}
	for _, p := range products {
		header = append(header, p.Name)
	}
	if err := writeRow(f, pricesSheet, 1, header); err != nil {
		return "", err
	}

	for i, label := range s.Labels {
		row := []interface{}{label}
		for _, p := range products {
			values := s.Values[p.Code]
			if i < len(values) && values[i] != nil {
				row = append(row, *values[i])
			} else {
				row = append(row, nil)
			}
		}
		if err := writeRow(f, pricesSheet, i+2, row); err != nil {
			return "", err
		}
	}

	const statsSheet = "Statistics"
	if _, err := f.NewSheet(statsSheet); err != nil {
		return "", apperrors.NewStorageError("failed to create statistics sheet", err)
	}

	statsHdr := make([]interface{}, len(statsHeader))
	for i, h := range statsHeader {
		statsHdr[i] = h
	}
	if err := writeRow(f, statsSheet, 1, statsHdr); err != nil {
		return "", err
	}
	for i, st := range stats {
		row := []interface{}{
			st.Product, st.MatchedLabel, st.Observations,
			st.Highest, st.HighestDate.String(),
			st.Lowest, st.LowestDate.String(),
			st.Average,
			st.LatestDelta, st.LatestDeltaPct,
			st.PeriodChange, st.PeriodChangePct,
		}
		if err := writeRow(f, statsSheet, i+2, row); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", apperrors.NewStorageError("failed to save XLSX report", err)
	}

	e.logger.InfoContext(ctx, "wrote XLSX report",
		slog.String("path", path),
		slog.Int("days", len(s.Labels)),
		slog.Int("products", len(products)))

	return path, nil
}

// writeRow writes one row starting at column A.
func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return apperrors.NewStorageError("failed to compute cell coordinates", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return apperrors.NewStorageError("failed to write sheet row", err)
	}
	return nil
}
