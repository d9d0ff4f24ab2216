package finance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/finance"
)

func TestDailyProfit(t *testing.T) {
	r := finance.DateRange{Start: date(2024, 4, 1), End: date(2024, 4, 3)}

	income := []entry.Entry{
		{Kind: entry.KindIncome, Amount: dec("1000"), TaxPercent: dec("10"), OccurredOn: date(2024, 4, 1)},
		{Kind: entry.KindIncome, Amount: dec("500"), OccurredOn: date(2024, 4, 3)},
		{Kind: entry.KindIncome, Amount: dec("9999"), OccurredOn: date(2024, 4, 4)},
	}
	expense := []entry.Entry{
		mk(entry.KindExpense, "300", date(2024, 4, 1), ""),
		mk(entry.KindExpense, "50", date(2024, 4, 2), ""),
	}

	days := finance.DailyProfit(income, expense, r)
	require.Len(t, days, 3)

	assertDec(t, "1000", days[0].Income)
	assertDec(t, "100", days[0].Tax)
	assertDec(t, "600", days[0].NetProfit)
	assertDec(t, "-50", days[1].NetProfit)
	assertDec(t, "500", days[2].NetProfit)

	total := finance.SumProfit(days)
	assertDec(t, "1500", total.Income)
	assertDec(t, "350", total.Expense)
	assertDec(t, "1050", total.NetProfit)
}

func TestProfitBars(t *testing.T) {
	r := finance.DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 31)}
	income := []entry.Entry{
		mk(entry.KindIncome, "10", date(2024, 1, 1), ""),
		mk(entry.KindIncome, "20", date(2024, 1, 8), ""),
		mk(entry.KindIncome, "30", date(2024, 1, 31), ""),
	}

	t.Run("FiveBarsLabelledByLastDay", func(t *testing.T) {
		bars := finance.ProfitBars(finance.DailyProfit(income, nil, r), 5)

		require.Len(t, bars, 5)

		labels := make([]string, len(bars))
		for i, b := range bars {
			labels[i] = b.Label
		}

		assert.Equal(t, []string{"7/1", "14/1", "21/1", "28/1", "31/1"}, labels)
		assertDec(t, "10", bars[0].NetProfit)
		assertDec(t, "20", bars[1].NetProfit)
		assertDec(t, "30", bars[4].NetProfit)
	})

	t.Run("FewDaysOneBarEach", func(t *testing.T) {
		short := finance.DateRange{Start: date(2024, 1, 1), End: date(2024, 1, 3)}
		bars := finance.ProfitBars(finance.DailyProfit(income, nil, short), 5)

		assert.Len(t, bars, 3)
	})

	t.Run("SingleBarIsPadded", func(t *testing.T) {
		today := finance.DateRange{Start: date(2024, 1, 8), End: date(2024, 1, 8)}
		bars := finance.ProfitBars(finance.DailyProfit(income, nil, today), 5)

		require.Len(t, bars, 2)
		assert.Equal(t, "8/1", bars[0].Label)
		assertDec(t, "20", bars[0].NetProfit)
		assert.Empty(t, bars[1].Label)
		assertDec(t, "0", bars[1].NetProfit)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, finance.ProfitBars(nil, 5))
	})
}
