package domain

import (
	"fmt"
	"strings"
	"time"
)

// DisplayDateFormat is the fixed day-first display form used across the
// dashboard and the source CSV.
const DisplayDateFormat = "02/01/2006"

// fallbackLayouts are tried, in order, for date text without a '/' separator.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// CalendarDay is a date with day precision and no time-of-day or timezone
// component. Two days are equal iff year, month and day all match. The zero
// value is the invalid sentinel: it reports IsValid() == false, sorts after
// every valid day and is excluded from range windows.
type CalendarDay struct {
	t time.Time
}

// NewCalendarDay constructs a CalendarDay from its components. Out-of-range
// components (e.g. 31 February) yield the invalid sentinel rather than being
// normalized into the next month.
func NewCalendarDay(year int, month time.Month, day int) CalendarDay {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return CalendarDay{}
	}
	return CalendarDay{t: t}
}

// DayOf truncates a time.Time to its calendar day in UTC.
func DayOf(t time.Time) CalendarDay {
	if t.IsZero() {
		return CalendarDay{}
	}
	y, m, d := t.UTC().Date()
	return CalendarDay{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses date text into a CalendarDay.
//
// Text containing a '/'-separated triple is always read as day/month/year.
// The source data is day-first by policy; this is deliberately not an
// auto-detection heuristic. Years shorter than four digits are zero-padded
// before composing the ISO intermediate so two-digit years are never
// reinterpreted. Text without a '/' falls back to a fixed set of generic
// layouts. Unparseable input yields the invalid sentinel, never epoch zero.
func ParseDay(text string) CalendarDay {
	s := strings.TrimSpace(text)
	if s == "" {
		return CalendarDay{}
	}

	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 {
			return CalendarDay{}
		}
		day := strings.TrimSpace(parts[0])
		month := strings.TrimSpace(parts[1])
		year := strings.TrimSpace(parts[2])
		iso := fmt.Sprintf("%s-%s-%s", leftPad(year, 4), leftPad(month, 2), leftPad(day, 2))
		t, err := time.Parse("2006-01-02", iso)
		if err != nil {
			return CalendarDay{}
		}
		return CalendarDay{t: t}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t)
		}
	}
	return CalendarDay{}
}

// ReformatDate re-renders date text in the fixed DD/MM/YYYY display form.
// Unparseable input is passed through unchanged so callers never see an
// "Invalid Date" placeholder.
func ReformatDate(text string) string {
	d := ParseDay(text)
	if !d.IsValid() {
		return text
	}
	return d.String()
}

// IsValid reports whether d holds an actual calendar date.
func (d CalendarDay) IsValid() bool {
	return !d.t.IsZero()
}

// Time returns the day as a UTC midnight instant. Invalid days return the
// zero time.
func (d CalendarDay) Time() time.Time {
	return d.t
}

// Year returns the calendar year, or 0 for the invalid sentinel.
func (d CalendarDay) Year() int {
	if !d.IsValid() {
		return 0
	}
	return d.t.Year()
}

// Month returns the calendar month, or 0 for the invalid sentinel.
func (d CalendarDay) Month() time.Month {
	if !d.IsValid() {
		return 0
	}
	return d.t.Month()
}

// Day returns the day of month, or 0 for the invalid sentinel.
func (d CalendarDay) Day() int {
	if !d.IsValid() {
		return 0
	}
	return d.t.Day()
}

// Equal reports whether both days refer to the same calendar date. Two
// invalid sentinels compare equal.
func (d CalendarDay) Equal(o CalendarDay) bool {
	return d.t.Equal(o.t)
}

// Compare orders calendar days ascending. The invalid sentinel sorts after
// every valid day so malformed dates never corrupt chronological order.
func (d CalendarDay) Compare(o CalendarDay) int {
	switch {
	case d.IsValid() && !o.IsValid():
		return -1
	case !d.IsValid() && o.IsValid():
		return 1
	case !d.IsValid() && !o.IsValid():
		return 0
	}
	return d.t.Compare(o.t)
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDay) Before(o CalendarDay) bool {
	return d.Compare(o) < 0
}

// After reports whether d is strictly later than o.
func (d CalendarDay) After(o CalendarDay) bool {
	return d.Compare(o) > 0
}

// AddMonths shifts the day by n calendar months (n may be negative). When the
// day of month does not exist in the target month it is clamped to the last
// valid day, so 31 March minus one month is 28 (or 29) February, never an
// overflow into March.
func (d CalendarDay) AddMonths(n int) CalendarDay {
	if !d.IsValid() {
		return CalendarDay{}
	}
	y, m, day := d.t.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return CalendarDay{t: time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)}
}

// AddYears shifts the day by n calendar years with the same month-end
// clamping rule as AddMonths (29 February minus one year is 28 February).
func (d CalendarDay) AddYears(n int) CalendarDay {
	return d.AddMonths(12 * n)
}

// String renders the day in the fixed DD/MM/YYYY display form. The invalid
// sentinel renders as the empty string.
func (d CalendarDay) String() string {
	if !d.IsValid() {
		return ""
	}
	return d.t.Format(DisplayDateFormat)
}

// MarshalJSON encodes the day as its display string; the invalid sentinel
// encodes as null.
func (d CalendarDay) MarshalJSON() ([]byte, error) {
	if !d.IsValid() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a display-form or ISO date string. null and the
// empty string decode to the invalid sentinel.
func (d *CalendarDay) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = CalendarDay{}
		return nil
	}
	*d = ParseDay(s)
	return nil
}

func leftPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
