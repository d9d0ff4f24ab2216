package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

type ProfitDay struct {
	Date      time.Time
	Income    decimal.Decimal
	Expense   decimal.Decimal
	Tax       decimal.Decimal
	NetProfit decimal.Decimal
}

// DailyProfit computes income, expense, tax deduction and net profit for
// every day of r. Entries outside r are ignored.
func DailyProfit(income, expense []entry.Entry, r DateRange) []ProfitDay {
	dates := r.Dates()
	days := make([]ProfitDay, len(dates))

	if len(days) == 0 {
		return days
	}

	incomeByDay := make([][]entry.Entry, len(days))
	expenseByDay := make([][]entry.Entry, len(days))

	for _, e := range income {
		if r.Contains(e.OccurredOn) {
			i := daysBetween(dates[0], Day(e.OccurredOn))
			incomeByDay[i] = append(incomeByDay[i], e)
		}
	}

	for _, e := range expense {
		if r.Contains(e.OccurredOn) {
			i := daysBetween(dates[0], Day(e.OccurredOn))
			expenseByDay[i] = append(expenseByDay[i], e)
		}
	}

	for i, d := range dates {
		m := ComputeMetrics(incomeByDay[i], expenseByDay[i])
		days[i] = ProfitDay{
			Date:      d,
			Income:    m.GrossProfit,
			Expense:   m.TotalExpense,
			Tax:       m.TaxComponent,
			NetProfit: m.NetProfit,
		}
	}

	return days
}

// ProfitBar is a run of days merged into one net-profit bar.
type ProfitBar struct {
	Label     string
	Start     time.Time
	End       time.Time
	NetProfit decimal.Decimal
}

// ProfitBars merges days into at most bars bars, each labelled with its last
// day. A single bar is followed by an empty zero bar.
func ProfitBars(days []ProfitDay, bars int) []ProfitBar {
	groups := chunk(days, bars)
	out := make([]ProfitBar, 0, max(len(groups), 2))

	for _, g := range groups {
		sum := decimal.Zero
		for _, d := range g {
			sum = sum.Add(d.NetProfit)
		}

		last := g[len(g)-1].Date
		out = append(out, ProfitBar{
			Label:     DayLabel(last),
			Start:     g[0].Date,
			End:       last,
			NetProfit: sum,
		})
	}

	if len(out) == 1 {
		out = append(out, ProfitBar{NetProfit: decimal.Zero})
	}

	return out
}

// SumProfit totals a daily profit series.
func SumProfit(days []ProfitDay) ProfitDay {
	total := ProfitDay{
		Income:    decimal.Zero,
		Expense:   decimal.Zero,
		Tax:       decimal.Zero,
		NetProfit: decimal.Zero,
	}

	for _, d := range days {
		total.Income = total.Income.Add(d.Income)
		total.Expense = total.Expense.Add(d.Expense)
		total.Tax = total.Tax.Add(d.Tax)
		total.NetProfit = total.NetProfit.Add(d.NetProfit)
	}

	return total
}
