package finance

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownPeriod = errors.New("unknown period")
	ErrMissingBounds = errors.New("custom period needs start and end")
)

type Period string

const (
	PeriodToday   Period = "today"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodCustom  Period = "custom"
)

// Periods lists the presets in picker order.
func Periods() []Period {
	return []Period{PeriodToday, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear, PeriodCustom}
}

func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods() {
		if p == known {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Range resolves a preset relative to now. Every preset ends today; custom
// takes the explicit start and end.
func (p Period) Range(now time.Time, start, end *time.Time) (DateRange, error) {
	today := Day(now)

	switch p {
	case PeriodToday:
		return DateRange{Start: today, End: today}, nil
	case PeriodWeek:
		return DateRange{Start: today.AddDate(0, 0, -7), End: today}, nil
	case PeriodMonth:
		return DateRange{Start: firstOfMonth(today), End: today}, nil
	case PeriodQuarter:
		q := (int(today.Month())-1)/3*3 + 1
		return DateRange{Start: time.Date(today.Year(), time.Month(q), 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	case PeriodYear:
		return DateRange{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	case PeriodCustom:
		if start == nil || end == nil {
			return DateRange{}, ErrMissingBounds
		}

		return NewDateRange(*start, *end)
	}

	return DateRange{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, string(p))
}

// MonthRange is the whole calendar month containing now.
func MonthRange(now time.Time) DateRange {
	start := firstOfMonth(Day(now))
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

// PreviousMonthRange is the whole calendar month before the one containing now.
func PreviousMonthRange(now time.Time) DateRange {
	return MonthRange(firstOfMonth(Day(now)).AddDate(0, 0, -1))
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
