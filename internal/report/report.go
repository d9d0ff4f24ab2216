package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/finance"
)

var cashFlowHeader = []string{"label", "cash_in", "cash_out", "net"}

// WriteCashFlowCSV writes one row per chart point. Amounts carry two decimals.
func WriteCashFlowCSV(w io.Writer, chart *dashboard.CashFlowChart) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(cashFlowHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, p := range chart.Points {
		row := []string{p.Label, money(p.CashIn), money(p.CashOut), money(p.Net)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing point %s: %w", p.Label, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteNetProfitCSV writes the per-day profit table behind the bar chart.
func WriteNetProfitCSV(w io.Writer, chart *dashboard.NetProfitChart) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "income", "expense", "tax", "net_profit"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, d := range chart.Days {
		row := []string{
			d.Date.Format("2006-01-02"),
			money(d.Income),
			money(d.Expense),
			money(d.Tax),
			money(d.NetProfit),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing day %s: %w", row[0], err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders the month comparison and the cash-flow totals as plain
// text. Either argument may be nil.
func Summary(s *dashboard.Summary, cf *dashboard.CashFlowChart) string {
	var sb strings.Builder

	if s != nil {
		fmt.Fprintf(&sb, "Month %s (previous %s)\n", s.Month, s.PreviousMonth)
		writeComparison(&sb, "Income", s.Income)
		writeComparison(&sb, "Expense", s.Expense)
		fmt.Fprintf(&sb, "* %-10s RM %s\n", "EBITDA", money(s.Current.TaxComponent))
		writeComparison(&sb, "Net profit", s.NetProfit)
	}

	if cf != nil {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}

		fmt.Fprintf(&sb, "Cash flow %s (%d days)\n", cf.Range, cf.Days)
		fmt.Fprintf(&sb, "* %-10s RM %s (avg %s/day)\n", "In", money(cf.TotalIn), money(cf.AverageIn))
		fmt.Fprintf(&sb, "* %-10s RM %s (avg %s/day)\n", "Out", money(cf.TotalOut), money(cf.AverageOut))
		fmt.Fprintf(&sb, "* %-10s RM %s\n", "Net", money(cf.Net))

		for _, src := range cf.Sources {
			if src.Total.IsZero() {
				continue
			}

			fmt.Fprintf(&sb, "  - %s (%s): RM %s\n", src.Bucket, src.Direction, money(src.Total))
		}
	}

	return sb.String()
}

func writeComparison(sb *strings.Builder, name string, c finance.Comparison) {
	fmt.Fprintf(sb, "* %-10s RM %s | %s%% %s\n", name, money(c.Current), c.PercentChange.StringFixed(1), arrow(c.Trend))
}

func arrow(t finance.Trend) string {
	switch t {
	case finance.TrendUp:
		return "▲"
	case finance.TrendDown:
		return "▼"
	default:
		return "="
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
