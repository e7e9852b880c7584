package report

import (
	"time"

	"github.com/openbooks/backend/internal/domain/shared"
)

// Period is a named reporting window relative to "today"
type Period string

const (
	PeriodToday     Period = "Today"
	PeriodYesterday Period = "Yesterday"
	PeriodThisMonth Period = "This Month"
	PeriodLastMonth Period = "Last Month"
	PeriodThisYear  Period = "This Year"
	PeriodLastYear  Period = "Last Year"
)

// day truncates a timestamp to its calendar date in UTC
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PeriodsFor classifies a transaction date into every reporting period it
// belongs to, evaluated against the given "today". A date can satisfy
// several periods at once (e.g. today is also in this month and this year).
// Pure and deterministic; callers inject the clock.
func PeriodsFor(d, today time.Time) []Period {
	d, today = day(d), day(today)

	var periods []Period
	if d.Equal(today) {
		periods = append(periods, PeriodToday)
	}
	if d.Equal(today.AddDate(0, 0, -1)) {
		periods = append(periods, PeriodYesterday)
	}
	if d.Year() == today.Year() && d.Month() == today.Month() {
		periods = append(periods, PeriodThisMonth)
	}
	// Last month is the month containing the day before the first of this
	// month, which handles January -> December year rollover.
	lastOfPrevMonth := firstOfMonth(today).AddDate(0, 0, -1)
	if d.Year() == lastOfPrevMonth.Year() && d.Month() == lastOfPrevMonth.Month() {
		periods = append(periods, PeriodLastMonth)
	}
	if d.Year() == today.Year() {
		periods = append(periods, PeriodThisYear)
	}
	if d.Year() == today.Year()-1 {
		periods = append(periods, PeriodLastYear)
	}
	return periods
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ResolveBalanceSheetWindow resolves the balance sheet time parameter into
// an inclusive [start, end] date window.
func ResolveBalanceSheetWindow(timeParam string, today time.Time) (start, end time.Time, err error) {
	today = day(today)
	switch Period(timeParam) {
	case PeriodToday:
		return today, today, nil
	case PeriodYesterday:
		y := today.AddDate(0, 0, -1)
		return y, y, nil
	case PeriodThisMonth:
		return firstOfMonth(today), today, nil
	default:
		return time.Time{}, time.Time{}, shared.ErrInvalidTimeParam
	}
}

// ResolveProfitLossWindow resolves the profit and loss time parameter into
// an inclusive [start, end] date window.
func ResolveProfitLossWindow(timeParam string, today time.Time) (start, end time.Time, err error) {
	today = day(today)
	switch Period(timeParam) {
	case PeriodThisMonth:
		return firstOfMonth(today), today, nil
	case PeriodLastMonth:
		lastOfPrev := firstOfMonth(today).AddDate(0, 0, -1)
		return firstOfMonth(lastOfPrev), lastOfPrev, nil
	case PeriodThisYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today, nil
	case PeriodLastYear:
		prev := today.Year() - 1
		return time.Date(prev, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(prev, time.December, 31, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, time.Time{}, shared.ErrInvalidTimeParam
	}
}
