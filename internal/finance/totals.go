package finance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

const Uncategorized = "Uncategorized"

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// TotalsByCategory sums amounts per raw category string in order of first
// appearance. Blank categories are grouped under Uncategorized.
func TotalsByCategory(entries []entry.Entry) []CategoryTotal {
	var out []CategoryTotal

	index := make(map[string]int)

	for _, e := range entries {
		key := e.Category
		if strings.TrimSpace(key) == "" {
			key = Uncategorized
		}

		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, CategoryTotal{Category: key, Total: decimal.Zero})
		}

		out[i].Total = out[i].Total.Add(e.Amount)
	}

	return out
}

// SumTotals is the grand total of a breakdown.
func SumTotals(totals []CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}

	return sum
}
