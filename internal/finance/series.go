package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AggregatedBucket is a run of contiguous days merged into one chart point.
type AggregatedBucket struct {
	Label   string
	Start   time.Time
	End     time.Time
	CashIn  decimal.Decimal
	CashOut decimal.Decimal
}

func (b AggregatedBucket) Net() decimal.Decimal {
	return b.CashIn.Sub(b.CashOut)
}

// Aggregate condenses daily into at most maxPoints buckets. Short series,
// and any series when maxPoints <= 0, map one day to one bucket. Longer ones
// are cut left to right into chunks of ceil(len/maxPoints) days, so every day
// lands in exactly one bucket and the sums are preserved.
func Aggregate(daily []DailyBucket, maxPoints int) []AggregatedBucket {
	groups := chunk(daily, maxPoints)
	out := make([]AggregatedBucket, 0, len(groups))

	for _, g := range groups {
		in, cashOut := SumBuckets(g)
		first, last := g[0].Date, g[len(g)-1].Date

		out = append(out, AggregatedBucket{
			Label:   SpanLabel(first, last),
			Start:   first,
			End:     last,
			CashIn:  in,
			CashOut: cashOut,
		})
	}

	return out
}

// PadSeries returns series with a trailing zero point appended when it holds
// a single point, so a line can still be drawn.
func PadSeries(series []AggregatedBucket) []AggregatedBucket {
	out := make([]AggregatedBucket, len(series), len(series)+1)
	copy(out, series)

	if len(out) == 1 {
		out = append(out, AggregatedBucket{CashIn: decimal.Zero, CashOut: decimal.Zero})
	}

	return out
}

// DayLabel formats a day as d/m.
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}

// SpanLabel formats an inclusive span: d/m for one day, d-d/m within one
// month and d/m-d/m across months.
func SpanLabel(first, last time.Time) string {
	switch {
	case Day(first).Equal(Day(last)):
		return DayLabel(first)
	case first.Year() == last.Year() && first.Month() == last.Month():
		return fmt.Sprintf("%d-%d/%d", first.Day(), last.Day(), int(first.Month()))
	default:
		return DayLabel(first) + "-" + DayLabel(last)
	}
}

// chunk splits items into at most maxPoints contiguous groups. The groups
// share the backing array of items.
func chunk[T any](items []T, maxPoints int) [][]T {
	if len(items) == 0 {
		return nil
	}

	size := 1
	if maxPoints > 0 && len(items) > maxPoints {
		size = (len(items) + maxPoints - 1) / maxPoints
	}

	groups := make([][]T, 0, (len(items)+size-1)/size)

	for i := 0; i < len(items); i += size {
		groups = append(groups, items[i:min(i+size, len(items))])
	}

	return groups
}
