package crawler

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"pvpulse/internal/config"
	"pvpulse/internal/dataprocessing"
	apperrors "pvpulse/internal/errors"
	"pvpulse/pkg/contracts/domain"
)

// extractRowsJS pulls the published price table off the PVOIL page. The
// table lists one row per product with the gross retail price in the
// second cell.
const extractRowsJS = `
(() => {
	const rows = [];
	document.querySelectorAll('table tbody tr').forEach(tr => {
		const cells = tr.querySelectorAll('td');
		if (cells.length >= 2) {
			rows.push({
				product: cells[0].innerText.trim(),
				price: cells[1].innerText.trim(),
			});
		}
	});
	return rows;
})()
`

// pageRow is one extracted table row before parsing.
type pageRow struct {
	Product string `json:"product"`
	Price   string `json:"price"`
}

// Crawler fetches the current retail prices from the PVOIL price page.
type Crawler struct {
	cfg     config.CrawlerConfig
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a crawler from configuration.
func New(cfg config.CrawlerConfig, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 0.5
	}
	return &Crawler{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger.With(slog.String("component", "crawler")),
	}
}

// FetchLatest loads the price page in a headless browser and returns
// today's observations, one record per product row.
func (c *Crawler) FetchLatest(ctx context.Context) ([]domain.PriceRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var rows []pageRow
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(c.cfg.PageURL),
		chromedp.WaitVisible(`table`, chromedp.ByQuery),
		chromedp.Evaluate(extractRowsJS, &rows),
	)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(c.cfg.PageURL, err)
	}

	c.logger.InfoContext(ctx, "price page fetched",
		slog.String("url", c.cfg.PageURL),
		slog.Int("rows", len(rows)),
		slog.Duration("duration", time.Since(start)))

	today := domain.DayOf(time.Now()).String()
	records := make([]domain.PriceRecord, 0, len(rows))
	for _, row := range rows {
		rec, ok := dataprocessing.ParseRow(map[string]string{
			"Ngày":      today,
			"Mặt hàng":  row.Product,
			"Giá (VND)": row.Price,
		})
		if !ok {
			c.logger.WarnContext(ctx, "row rejected",
				slog.String("product", row.Product),
				slog.String("price", row.Price))
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, apperrors.NewDataUnavailableError(c.cfg.PageURL,
			fmt.Errorf("no parsable price rows on page"))
	}
	return records, nil
}

// AppendToCSV appends new observations to the history file, skipping
// (day, product) pairs already recorded. The file is created with the
// canonical header when missing.
func (c *Crawler) AppendToCSV(ctx context.Context, path string, records []domain.PriceRecord) (int, error) {
	existing := map[string]bool{}
	header := []string{"Ngày", "Mặt hàng", "Giá (VND)"}

	if f, err := os.Open(path); err == nil {
		result, parseErr := dataprocessing.ParseCSV(ctx, f, c.logger)
		f.Close()
		if parseErr != nil {
			return 0, parseErr
		}
		for _, rec := range result.Records {
			existing[rec.Date.String()+"|"+strings.ToLower(rec.Product)] = true
		}
	} else if !os.IsNotExist(err) {
		return 0, apperrors.NewStorageError("failed to open history file", err)
	}

	fresh := make([]domain.PriceRecord, 0, len(records))
	for _, rec := range records {
		if !existing[rec.Date.String()+"|"+strings.ToLower(rec.Product)] {
			fresh = append(fresh, rec)
		}
	}
	if len(fresh) == 0 {
		c.logger.InfoContext(ctx, "no new observations", slog.String("path", path))
		return 0, nil
	}

	_, statErr := os.Stat(path)
	needHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to open history file for append", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(header); err != nil {
			return 0, apperrors.NewStorageError("failed to write header", err)
		}
	}
	for _, rec := range fresh {
		row := []string{rec.Date.String(), rec.Product, fmt.Sprintf("%.0f", rec.Price)}
		if err := w.Write(row); err != nil {
			return 0, apperrors.NewStorageError("failed to write observation", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, apperrors.NewStorageError("failed to flush history file", err)
	}

	c.logger.InfoContext(ctx, "observations appended",
		slog.String("path", path),
		slog.Int("records", len(fresh)))
	return len(fresh), nil
}
