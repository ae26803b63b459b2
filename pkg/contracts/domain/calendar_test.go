package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay_DayFirst(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"padded", "01/03/2024", "01/03/2024"},
		{"unpadded day and month", "1/3/2024", "01/03/2024"},
		{"end of month", "31/12/2023", "31/12/2023"},
		{"surrounding whitespace", " 15/06/2024 ", "15/06/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDay(tt.input)
			require.True(t, d.IsValid())
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseDay_NeverMonthFirst(t *testing.T) {
	// 03/01/2024 is 3 January, not 1 March.
	d := ParseDay("03/01/2024")
	require.True(t, d.IsValid())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 3, d.Day())
}

func TestParseDay_FallbackLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-03-15", "15/03/2024"},
		{"15-03-2024", "15/03/2024"},
		{"15 Mar 2024", "15/03/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := ParseDay(tt.input)
			require.True(t, d.IsValid())
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseDay_Invalid(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"not-a-date",
		"32/01/2024",
		"29/02/2023",
		"01/13/2024",
		"1/2",
		"1/2/3/4",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			d := ParseDay(input)
			assert.False(t, d.IsValid())
			// The sentinel must never look like the Unix epoch.
			assert.NotEqual(t, "01/01/1970", d.String())
			assert.Equal(t, "", d.String())
		})
	}
}

func TestReformatDate(t *testing.T) {
	assert.Equal(t, "01/03/2024", ReformatDate("1/3/2024"))
	assert.Equal(t, "15/03/2024", ReformatDate("2024-03-15"))
	// Garbage passes through untouched.
	assert.Equal(t, "not-a-date", ReformatDate("not-a-date"))
	assert.Equal(t, "", ReformatDate(""))
}

func TestCalendarDay_Compare(t *testing.T) {
	early := ParseDay("01/01/2024")
	late := ParseDay("02/01/2024")
	var invalid CalendarDay

	assert.Negative(t, early.Compare(late))
	assert.Positive(t, late.Compare(early))
	assert.Zero(t, early.Compare(early))

	// Invalid sorts after every valid day.
	assert.Negative(t, late.Compare(invalid))
	assert.Positive(t, invalid.Compare(late))
	assert.Zero(t, invalid.Compare(CalendarDay{}))

	assert.True(t, early.Before(late))
	assert.True(t, late.After(early))
	assert.True(t, early.Equal(ParseDay("1/1/2024")))
}

func TestCalendarDay_AddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{"plain shift", "15/06/2024", -1, "15/05/2024"},
		{"clamp into february", "31/03/2024", -1, "29/02/2024"},
		{"clamp into non-leap february", "31/03/2023", -1, "28/02/2023"},
		{"clamp 31 to 30", "31/05/2024", -1, "30/04/2024"},
		{"across year boundary", "15/01/2024", -3, "15/10/2023"},
		{"forward shift", "30/01/2024", 1, "29/02/2024"},
		{"six months back", "31/08/2024", -6, "29/02/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDay(tt.start).AddMonths(tt.months)
			require.True(t, got.IsValid())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCalendarDay_AddYears(t *testing.T) {
	// Leap day shifts clamp to 28 February.
	assert.Equal(t, "28/02/2023", ParseDay("29/02/2024").AddYears(-1).String())
	assert.Equal(t, "15/06/2023", ParseDay("15/06/2024").AddYears(-1).String())
}

func TestCalendarDay_AddMonths_InvalidStaysInvalid(t *testing.T) {
	var invalid CalendarDay
	assert.False(t, invalid.AddMonths(-1).IsValid())
	assert.False(t, invalid.AddYears(1).IsValid())
}

func TestNewCalendarDay_RejectsOverflow(t *testing.T) {
	assert.False(t, NewCalendarDay(2024, time.February, 31).IsValid())
	assert.True(t, NewCalendarDay(2024, time.February, 29).IsValid())
	assert.False(t, NewCalendarDay(2023, time.February, 29).IsValid())
}

func TestCalendarDay_JSON(t *testing.T) {
	d := ParseDay("15/03/2024")
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"15/03/2024"`, string(data))

	var back CalendarDay
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))

	var invalid CalendarDay
	data, err = json.Marshal(invalid)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var fromNull CalendarDay
	require.NoError(t, json.Unmarshal([]byte("null"), &fromNull))
	assert.False(t, fromNull.IsValid())
}
