package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

// DailyBucket holds the cash moved on one calendar day.
type DailyBucket struct {
	Date    time.Time
	CashIn  decimal.Decimal
	CashOut decimal.Decimal
}

func (b DailyBucket) Net() decimal.Decimal {
	return b.CashIn.Sub(b.CashOut)
}

// Bucketize produces one bucket per day of r, zero-filled, and adds every
// classified in-range entry to its day. Unclassified or out-of-range entries
// are ignored. An inverted range yields no buckets.
func Bucketize(entries []entry.Entry, r DateRange) []DailyBucket {
	dates := r.Dates()
	buckets := make([]DailyBucket, len(dates))

	for i, d := range dates {
		buckets[i] = DailyBucket{Date: d, CashIn: decimal.Zero, CashOut: decimal.Zero}
	}

	if len(buckets) == 0 {
		return buckets
	}

	start := dates[0]

	for _, e := range entries {
		if !r.Contains(e.OccurredOn) {
			continue
		}

		b := &buckets[daysBetween(start, Day(e.OccurredOn))]

		switch Classify(e).Direction {
		case CashIn:
			b.CashIn = b.CashIn.Add(e.Amount)
		case CashOut:
			b.CashOut = b.CashOut.Add(e.Amount)
		}
	}

	return buckets
}

// SumBuckets totals a daily series.
func SumBuckets(daily []DailyBucket) (in, out decimal.Decimal) {
	in, out = decimal.Zero, decimal.Zero

	for _, b := range daily {
		in = in.Add(b.CashIn)
		out = out.Add(b.CashOut)
	}

	return in, out
}

// TotalsByBucket sums the in-range entries per classified source bucket.
// Buckets without any entry are present with a zero total.
func TotalsByBucket(entries []entry.Entry, r DateRange) map[Bucket]decimal.Decimal {
	totals := make(map[Bucket]decimal.Decimal, len(CashBuckets()))
	for _, b := range CashBuckets() {
		totals[b] = decimal.Zero
	}

	for _, e := range entries {
		if !r.Contains(e.OccurredOn) {
			continue
		}

		c := Classify(e)
		if c.Direction == Unclassified {
			continue
		}

		totals[c.Bucket] = totals[c.Bucket].Add(e.Amount)
	}

	return totals
}
