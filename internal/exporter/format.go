package exporter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatVND formats a price for display: rounded to the whole đồng and
// grouped in thousands with the vi-VN dot separator, e.g. 21500.4 →
// "21.500".
func FormatVND(value float64) string {
	return groupThousands(int64(math.Round(value)), ".")
}

// FormatVNDWith formats with an explicit grouping separator for callers
// that render another locale.
func FormatVNDWith(value float64, sep string) string {
	return groupThousands(int64(math.Round(value)), sep)
}

// groupThousands renders n with sep between each group of three digits.
func groupThousands(n int64, sep string) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return sign + strings.Join(groups, sep)
}

// formatPrice renders a price cell for CSV output with no decimals; the
// feed carries whole-đồng prices.
func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatPct renders a percentage with two decimals, e.g. "+5.00".
func formatPct(f float64) string {
	return fmt.Sprintf("%+.2f", f)
}
