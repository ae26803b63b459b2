package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"pvpulse/internal/catalog"
	"pvpulse/internal/config"
	"pvpulse/internal/exporter"
	"pvpulse/internal/infrastructure"
	"pvpulse/internal/series"
	"pvpulse/internal/stats"
	"pvpulse/internal/store"
	"pvpulse/internal/window"
	"pvpulse/pkg/contracts/domain"
)

// processor turns the observation history into offline reports: a records
// CSV, a statistics CSV, and a two-sheet XLSX workbook.
func main() {
	configFile := flag.String("config", "", "path to YAML config file")
	in := flag.String("in", "", "history CSV path (overrides config)")
	outDir := flag.String("out", "", "report output directory (overrides config)")
	rangeToken := flag.String("range", "ALL", "window token: 1M, 3M, 6M, 1Y, 3Y, ALL")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	csvPath := cfg.Source.CSVPath
	if *in != "" {
		csvPath = *in
	}
	dir := cfg.Export.Dir
	if *outDir != "" {
		dir = *outDir
	}

	ctx := context.Background()

	st := store.New(store.FileSource{Path: csvPath}, logger)
	ds, err := st.Load(ctx)
	if err != nil {
		logger.Error("failed to load observations",
			slog.String("path", csvPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	windowed := window.FilterByRange(ds, *rangeToken)
	matcher := catalog.NewMatcher()
	s := series.Build(windowed, cfg.Catalog, matcher)

	allStats := make([]domain.PriceStats, 0, len(cfg.Catalog))
	for _, p := range cfg.Catalog {
		if ps, ok := stats.ComputeProductStats(windowed, p, matcher); ok {
			allStats = append(allStats, ps)
		}
	}

	exp := exporter.New(dir, logger)

	recordsPath, err := exp.WriteRecordsCSV(ctx, "records.csv", windowed)
	if err != nil {
		logger.Error("records export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	statsPath, err := exp.WriteStatsCSV(ctx, "stats.csv", allStats)
	if err != nil {
		logger.Error("stats export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	reportPath, err := exp.WriteReportXLSX(ctx, "report.xlsx", s, cfg.Catalog, allStats)
	if err != nil {
		logger.Error("workbook export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("reports written",
		slog.String("range", string(window.ParseRange(*rangeToken))),
		slog.Int("records", len(windowed)),
		slog.String("records_csv", recordsPath),
		slog.String("stats_csv", statsPath),
		slog.String("report_xlsx", reportPath))
}
