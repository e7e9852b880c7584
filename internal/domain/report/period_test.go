package report

import (
	"testing"
	"time"

	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodsFor(t *testing.T) {
	today := date(2024, time.June, 15)

	tests := []struct {
		name string
		d    time.Time
		want []Period
	}{
		{
			name: "today belongs to today, this month and this year",
			d:    date(2024, time.June, 15),
			want: []Period{PeriodToday, PeriodThisMonth, PeriodThisYear},
		},
		{
			name: "yesterday belongs to yesterday, this month and this year",
			d:    date(2024, time.June, 14),
			want: []Period{PeriodYesterday, PeriodThisMonth, PeriodThisYear},
		},
		{
			name: "previous month belongs to last month and this year",
			d:    date(2024, time.May, 3),
			want: []Period{PeriodLastMonth, PeriodThisYear},
		},
		{
			name: "previous year only belongs to last year",
			d:    date(2023, time.June, 15),
			want: []Period{PeriodLastYear},
		},
		{
			name: "two years back belongs to nothing",
			d:    date(2022, time.June, 15),
			want: nil,
		},
		{
			name: "time of day is ignored",
			d:    time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC),
			want: []Period{PeriodToday, PeriodThisMonth, PeriodThisYear},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodsFor(tt.d, today))
		})
	}
}

func TestPeriodsFor_YearBoundary(t *testing.T) {
	// Jan 1: yesterday and last month both cross the year rollover.
	today := date(2024, time.January, 1)

	got := PeriodsFor(date(2023, time.December, 31), today)
	assert.Equal(t, []Period{PeriodYesterday, PeriodLastMonth, PeriodLastYear}, got)

	got = PeriodsFor(date(2023, time.December, 1), today)
	assert.Equal(t, []Period{PeriodLastMonth, PeriodLastYear}, got)
}

func TestResolveBalanceSheetWindow(t *testing.T) {
	today := date(2024, time.June, 15)

	tests := []struct {
		timeParam string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"Today", date(2024, time.June, 15), date(2024, time.June, 15)},
		{"Yesterday", date(2024, time.June, 14), date(2024, time.June, 14)},
		{"This Month", date(2024, time.June, 1), date(2024, time.June, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.timeParam, func(t *testing.T) {
			start, end, err := ResolveBalanceSheetWindow(tt.timeParam, today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestResolveBalanceSheetWindow_Invalid(t *testing.T) {
	for _, timeParam := range []string{"Next Week", "this month", "This Year", ""} {
		_, _, err := ResolveBalanceSheetWindow(timeParam, date(2024, time.June, 15))
		assert.ErrorIs(t, err, shared.ErrInvalidTimeParam, "time=%q", timeParam)
	}
}

func TestResolveProfitLossWindow(t *testing.T) {
	today := date(2024, time.June, 15)

	tests := []struct {
		timeParam string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"This Month", date(2024, time.June, 1), date(2024, time.June, 15)},
		{"Last Month", date(2024, time.May, 1), date(2024, time.May, 31)},
		{"This Year", date(2024, time.January, 1), date(2024, time.June, 15)},
		{"Last Year", date(2023, time.January, 1), date(2023, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.timeParam, func(t *testing.T) {
			start, end, err := ResolveProfitLossWindow(tt.timeParam, today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestResolveProfitLossWindow_JanuaryRollover(t *testing.T) {
	start, end, err := ResolveProfitLossWindow("Last Month", date(2024, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.December, 1), start)
	assert.Equal(t, date(2023, time.December, 31), end)
}

func TestResolveProfitLossWindow_Invalid(t *testing.T) {
	for _, timeParam := range []string{"Today", "Yesterday", "last year", ""} {
		_, _, err := ResolveProfitLossWindow(timeParam, date(2024, time.June, 15))
		assert.ErrorIs(t, err, shared.ErrInvalidTimeParam, "time=%q", timeParam)
	}
}
