package dashboard

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/buku/internal/finance"
)

// MaxRangeDays bounds explicit ranges so a single request cannot ask for
// centuries of daily buckets.
const MaxRangeDays = 100 * 366

// RangeFromQuery resolves ?period=… or ?start=…&end=… (YYYY-MM-DD) against
// now. Explicit bounds win over a preset; with neither the current month is
// used.
func RangeFromQuery(r *http.Request, now time.Time) (finance.DateRange, error) {
	q := r.URL.Query()

	start, err := dateParam(q.Get("start"))
	if err != nil {
		return finance.DateRange{}, err
	}

	end, err := dateParam(q.Get("end"))
	if err != nil {
		return finance.DateRange{}, err
	}

	period := finance.PeriodMonth

	switch {
	case start != nil || end != nil:
		period = finance.PeriodCustom
	case q.Get("period") != "":
		period, err = finance.ParsePeriod(q.Get("period"))
		if err != nil {
			return finance.DateRange{}, err
		}
	}

	rng, err := period.Range(now, start, end)
	if err != nil {
		return finance.DateRange{}, err
	}

	if rng.Days() > MaxRangeDays {
		return finance.DateRange{}, fmt.Errorf("%w: %s spans more than %d days", finance.ErrInvalidRange, rng, MaxRangeDays)
	}

	return rng, nil
}

func dateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", finance.ErrInvalidRange, s)
	}

	return new(t), nil
}
