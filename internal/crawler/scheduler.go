package crawler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the crawl on a cron schedule and appends new
// observations to the history CSV.
type Scheduler struct {
	cron    *cron.Cron
	crawler *Crawler
	csvPath string
	logger  *slog.Logger
}

// NewScheduler creates a scheduler around a crawler.
func NewScheduler(c *Crawler, csvPath string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(),
		crawler: c,
		csvPath: csvPath,
		logger:  logger.With(slog.String("component", "crawler.scheduler")),
	}
}

// Register adds the crawl job under the given cron expression.
func (s *Scheduler) Register(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			s.logger.Error("scheduled crawl failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return fmt.Errorf("register crawl job: %w", err)
	}
	return nil
}

// RunOnce fetches the current prices and appends any new observations.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	records, err := s.crawler.FetchLatest(ctx)
	if err != nil {
		return err
	}
	appended, err := s.crawler.AppendToCSV(ctx, s.csvPath, records)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "crawl complete",
		slog.Int("fetched", len(records)),
		slog.Int("appended", appended))
	return nil
}

// Start starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
