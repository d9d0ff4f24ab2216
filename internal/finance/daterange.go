package finance

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

var ErrInvalidRange = errors.New("range start is after end")

// Day truncates t to its calendar day, keeping the year, month and day as
// seen in t's own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Day(start), End: Day(end)}
	if r.Start.After(r.End) {
		return DateRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	}

	return r, nil
}

// Days is the number of calendar days covered, or 0 for an inverted range.
func (r DateRange) Days() int {
	start, end := Day(r.Start), Day(r.End)
	if start.After(end) {
		return 0
	}

	return daysBetween(start, end) + 1
}

func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// Dates lists every day of the range in ascending order.
func (r DateRange) Dates() []time.Time {
	n := r.Days()
	out := make([]time.Time, n)
	start := Day(r.Start)

	for i := range n {
		out[i] = start.AddDate(0, 0, i)
	}

	return out
}

// Previous is the range of equal length ending the day before r starts.
func (r DateRange) Previous() DateRange {
	n := r.Days()
	if n == 0 {
		return r
	}

	end := Day(r.Start).AddDate(0, 0, -1)

	return DateRange{Start: end.AddDate(0, 0, -(n - 1)), End: end}
}

func (r DateRange) String() string {
	return Day(r.Start).Format(time.DateOnly) + ".." + Day(r.End).Format(time.DateOnly)
}

// FilterRange returns the entries dated within r, in input order.
func FilterRange(entries []entry.Entry, r DateRange) []entry.Entry {
	out := make([]entry.Entry, 0, len(entries))

	for _, e := range entries {
		if r.Contains(e.OccurredOn) {
			out = append(out, e)
		}
	}

	return out
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts calendar days from from to to. It works on Unix seconds
// because time.Duration overflows past roughly 292 years.
func daysBetween(from, to time.Time) int {
	return int((Day(to).Unix() - Day(from).Unix()) / secondsPerDay)
}
