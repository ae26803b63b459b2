package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"pvpulse/pkg/contracts/domain"
)

// Column aliases recognized in the source CSV header. The feed has shipped
// with both Vietnamese and English headers over time; the first present
// alias wins.
var (
	dateAliases    = []string{"Ngày", "Date", "date"}
	productAliases = []string{"Mặt hàng", "Product", "product"}
	priceAliases   = []string{"Giá (VND)", "Price", "price"}
)

// ParseRow turns one raw header-keyed row into a canonical PriceRecord.
//
// It is a pure function over the row. ok is false when the date or product
// cell is empty or missing, the date text does not parse to a calendar day,
// or the price does not parse to a finite number. Rejection is silent
// filtering, never an error: the surrounding load succeeds with the
// surviving rows.
func ParseRow(row map[string]string) (domain.PriceRecord, bool) {
	dateRaw := firstPresent(row, dateAliases)
	productRaw := strings.TrimSpace(firstPresent(row, productAliases))
	priceRaw := firstPresent(row, priceAliases)

	if strings.TrimSpace(dateRaw) == "" || productRaw == "" {
		return domain.PriceRecord{}, false
	}

	day := domain.ParseDay(dateRaw)
	if !day.IsValid() {
		return domain.PriceRecord{}, false
	}

	price, ok := parsePrice(priceRaw)
	if !ok {
		return domain.PriceRecord{}, false
	}

	return domain.PriceRecord{
		Date:    day,
		Product: productRaw,
		Price:   price,
	}, true
}

// parsePrice normalizes a textual price: thousands separators (commas and
// spaces) are stripped before the numeric parse. Only finite results are
// accepted.
func parsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// firstPresent returns the value of the first alias present in the row with
// a non-empty value.
func firstPresent(row map[string]string, aliases []string) string {
	for _, key := range aliases {
		if v, ok := row[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

// ParseResult carries the outcome of parsing one CSV source.
type ParseResult struct {
	Records  domain.Dataset
	RowsRead int
	Rejected int
}

// ParseCSV reads header-based CSV rows from r and parses each into a
// PriceRecord. The byte order mark some writers prepend (the feed is
// produced with utf-8-sig) is stripped from the first header cell. Rejected
// rows are counted and logged at debug level, not returned as errors.
// Records come back in file order; sorting is the store's concern.
func ParseCSV(ctx context.Context, r io.Reader, logger *slog.Logger) (ParseResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ParseResult{}, fmt.Errorf("read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var result ParseResult
	for {
		select {
		case <-ctx.Done():
			return ParseResult{}, ctx.Err()
		default:
		}

		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed line is a row-level reject, not a load failure.
			result.RowsRead++
			result.Rejected++
			logger.DebugContext(ctx, "skipping malformed CSV line", slog.String("error", err.Error()))
			continue
		}

		result.RowsRead++

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			}
		}

		record, ok := ParseRow(row)
		if !ok {
			result.Rejected++
			logger.DebugContext(ctx, "rejected row", slog.Int("row_number", result.RowsRead))
			continue
		}
		result.Records = append(result.Records, record)
	}

	logger.InfoContext(ctx, "CSV parse complete",
		slog.Int("rows_read", result.RowsRead),
		slog.Int("records", len(result.Records)),
		slog.Int("rejected", result.Rejected))

	return result, nil
}
