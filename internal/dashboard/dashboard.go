package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/finance"
)

// CashFlowPoint is one point of the cash-flow line chart.
type CashFlowPoint struct {
	Label   string
	Start   time.Time
	End     time.Time
	CashIn  decimal.Decimal
	CashOut decimal.Decimal
	Net     decimal.Decimal
}

// SourceTotal is the cash moved by one classifier bucket.
type SourceTotal struct {
	Bucket    finance.Bucket
	Direction finance.Direction
	Total     decimal.Decimal
}

type CashFlowChart struct {
	Range      finance.DateRange
	Days       int
	Aggregated bool
	Points     []CashFlowPoint
	TotalIn    decimal.Decimal
	TotalOut   decimal.Decimal
	Net        decimal.Decimal
	AverageIn  decimal.Decimal
	AverageOut decimal.Decimal
	Sources    []SourceTotal
}

type NetProfitBar struct {
	Label     string
	Start     time.Time
	End       time.Time
	NetProfit decimal.Decimal
}

type NetProfitChart struct {
	Range            finance.DateRange
	Days             []finance.ProfitDay
	Bars             []NetProfitBar
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	TotalTax         decimal.Decimal
	TotalNetProfit   decimal.Decimal
	AverageNetProfit decimal.Decimal
}

// Summary compares the current calendar month with the previous one.
type Summary struct {
	Month         finance.DateRange
	PreviousMonth finance.DateRange
	Current       finance.Metrics
	Previous      finance.Metrics
	Income        finance.Comparison
	Expense       finance.Comparison
	NetProfit     finance.Comparison
}

// Slice is one category of a donut chart.
type Slice struct {
	Category string
	Label    string
	Total    decimal.Decimal
	// Share is the percentage of the chart total, rounded to two places.
	Share decimal.Decimal
	Color string
}

type Donut struct {
	Slices []Slice
	Total  decimal.Decimal
}

type Breakdown struct {
	Assets          Donut
	Liabilities     Donut
	Equity          Donut
	LiabilityEquity Donut
}

var (
	AssetPalette     = []string{"#3b82f6", "#0ea5e9", "#06b6d4", "#0891b2", "#0c4a6e", "#1e40af"}
	LiabilityPalette = []string{"#f59e42", "#fbbf24", "#f97316", "#ea580c", "#dc2626", "#b91c1c"}
	EquityPalette    = []string{"#a855f7", "#6366f1", "#f472b6", "#fbbf24", "#8b5cf6", "#7c3aed"}
)
