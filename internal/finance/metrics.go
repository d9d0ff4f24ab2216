package finance

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

var hundred = decimal.NewFromInt(100)

// Metrics are the derived accounting figures of one period. TaxComponent is
// the income tax deduction reported as "EBITDA" on the dashboards.
type Metrics struct {
	GrossProfit  decimal.Decimal
	TaxComponent decimal.Decimal
	TotalExpense decimal.Decimal
	NetProfit    decimal.Decimal
}

// TaxComponent is the tax deduction of one income entry, amount * taxPercent
// / 100. A missing rate counts as zero.
func TaxComponent(e entry.Entry) decimal.Decimal {
	return e.Amount.Mul(e.TaxPercent).Shift(-2)
}

// ComputeMetrics derives the period figures. The tax deduction is taken per
// income entry since each one may carry its own rate.
func ComputeMetrics(income, expense []entry.Entry) Metrics {
	m := Metrics{
		GrossProfit:  decimal.Zero,
		TaxComponent: decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, e := range income {
		m.GrossProfit = m.GrossProfit.Add(e.Amount)
		m.TaxComponent = m.TaxComponent.Add(TaxComponent(e))
	}

	for _, e := range expense {
		m.TotalExpense = m.TotalExpense.Add(e.Amount)
	}

	m.NetProfit = m.GrossProfit.Sub(m.TotalExpense).Sub(m.TaxComponent)

	return m
}

// PercentChange is (current - previous) / previous * 100, or zero when
// previous is zero.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}

	return current.Sub(previous).Mul(hundred).Div(previous)
}

type Trend string

const (
	TrendUp       Trend = "up"
	TrendDown     Trend = "down"
	TrendNoChange Trend = "no_change"
)

func TrendOf(change decimal.Decimal) Trend {
	switch change.Sign() {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendNoChange
	}
}

// Comparison relates a figure to the same figure of the previous period.
type Comparison struct {
	Current       decimal.Decimal
	Previous      decimal.Decimal
	PercentChange decimal.Decimal
	Trend         Trend
}

func Compare(current, previous decimal.Decimal) Comparison {
	change := PercentChange(current, previous)

	return Comparison{
		Current:       current,
		Previous:      previous,
		PercentChange: change,
		Trend:         TrendOf(change),
	}
}
