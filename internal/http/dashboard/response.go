package dashboard

import (
	"time"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/finance"
	"github.com/MrJamesThe3rd/buku/internal/http/respond"
)

type rangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type pointResponse struct {
	Label   string `json:"label"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	CashIn  string `json:"cash_in"`
	CashOut string `json:"cash_out"`
	Net     string `json:"net"`
}

type sourceResponse struct {
	Bucket    string `json:"bucket"`
	Direction string `json:"direction"`
	Total     string `json:"total"`
}

type cashFlowResponse struct {
	Range      rangeResponse    `json:"range"`
	Aggregated bool             `json:"aggregated"`
	Points     []pointResponse  `json:"points"`
	TotalIn    string           `json:"total_in"`
	TotalOut   string           `json:"total_out"`
	Net        string           `json:"net"`
	AverageIn  string           `json:"average_in"`
	AverageOut string           `json:"average_out"`
	Sources    []sourceResponse `json:"sources"`
}

type barResponse struct {
	Label     string `json:"label"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	NetProfit string `json:"net_profit"`
}

type netProfitResponse struct {
	Range            rangeResponse `json:"range"`
	Bars             []barResponse `json:"bars"`
	TotalIncome      string        `json:"total_income"`
	TotalExpense     string        `json:"total_expense"`
	TotalTax         string        `json:"total_tax"`
	TotalNetProfit   string        `json:"total_net_profit"`
	AverageNetProfit string        `json:"average_net_profit"`
}

type metricsResponse struct {
	GrossProfit  string `json:"gross_profit"`
	TaxComponent string `json:"ebitda"`
	TotalExpense string `json:"total_expense"`
	NetProfit    string `json:"net_profit"`
}

type comparisonResponse struct {
	Current       string `json:"current"`
	Previous      string `json:"previous"`
	PercentChange string `json:"percent_change"`
	Trend         string `json:"trend"`
}

type summaryResponse struct {
	Month         rangeResponse      `json:"month"`
	PreviousMonth rangeResponse      `json:"previous_month"`
	Current       metricsResponse    `json:"current"`
	Previous      metricsResponse    `json:"previous"`
	Income        comparisonResponse `json:"income"`
	Expense       comparisonResponse `json:"expense"`
	NetProfit     comparisonResponse `json:"net_profit"`
}

type sliceResponse struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Total    string `json:"total"`
	Share    string `json:"share"`
	Color    string `json:"color"`
}

type donutResponse struct {
	Slices []sliceResponse `json:"slices"`
	Total  string          `json:"total"`
}

type breakdownResponse struct {
	Assets          donutResponse `json:"assets"`
	Liabilities     donutResponse `json:"liabilities"`
	Equity          donutResponse `json:"equity"`
	LiabilityEquity donutResponse `json:"liability_equity"`
}

func toRange(r finance.DateRange) rangeResponse {
	return rangeResponse{
		Start: r.Start.Format(time.DateOnly),
		End:   r.End.Format(time.DateOnly),
		Days:  r.Days(),
	}
}

// dateOrEmpty leaves padding points without dates.
func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}

func toCashFlow(c *dashboard.CashFlowChart) cashFlowResponse {
	resp := cashFlowResponse{
		Range:      toRange(c.Range),
		Aggregated: c.Aggregated,
		Points:     make([]pointResponse, len(c.Points)),
		TotalIn:    respond.Money(c.TotalIn),
		TotalOut:   respond.Money(c.TotalOut),
		Net:        respond.Money(c.Net),
		AverageIn:  respond.Money(c.AverageIn),
		AverageOut: respond.Money(c.AverageOut),
		Sources:    make([]sourceResponse, len(c.Sources)),
	}

	for i, p := range c.Points {
		resp.Points[i] = pointResponse{
			Label:   p.Label,
			Start:   dateOrEmpty(p.Start),
			End:     dateOrEmpty(p.End),
			CashIn:  respond.Money(p.CashIn),
			CashOut: respond.Money(p.CashOut),
			Net:     respond.Money(p.Net),
		}
	}

	for i, s := range c.Sources {
		resp.Sources[i] = sourceResponse{
			Bucket:    string(s.Bucket),
			Direction: s.Direction.String(),
			Total:     respond.Money(s.Total),
		}
	}

	return resp
}

func toNetProfit(c *dashboard.NetProfitChart) netProfitResponse {
	resp := netProfitResponse{
		Range:            toRange(c.Range),
		Bars:             make([]barResponse, len(c.Bars)),
		TotalIncome:      respond.Money(c.TotalIncome),
		TotalExpense:     respond.Money(c.TotalExpense),
		TotalTax:         respond.Money(c.TotalTax),
		TotalNetProfit:   respond.Money(c.TotalNetProfit),
		AverageNetProfit: respond.Money(c.AverageNetProfit),
	}

	for i, b := range c.Bars {
		resp.Bars[i] = barResponse{
			Label:     b.Label,
			Start:     dateOrEmpty(b.Start),
			End:       dateOrEmpty(b.End),
			NetProfit: respond.Money(b.NetProfit),
		}
	}

	return resp
}

func toMetrics(m finance.Metrics) metricsResponse {
	return metricsResponse{
		GrossProfit:  respond.Money(m.GrossProfit),
		TaxComponent: respond.Money(m.TaxComponent),
		TotalExpense: respond.Money(m.TotalExpense),
		NetProfit:    respond.Money(m.NetProfit),
	}
}

func toComparison(c finance.Comparison) comparisonResponse {
	return comparisonResponse{
		Current:       respond.Money(c.Current),
		Previous:      respond.Money(c.Previous),
		PercentChange: c.PercentChange.StringFixed(2),
		Trend:         string(c.Trend),
	}
}

func toSummary(s *dashboard.Summary) summaryResponse {
	return summaryResponse{
		Month:         toRange(s.Month),
		PreviousMonth: toRange(s.PreviousMonth),
		Current:       toMetrics(s.Current),
		Previous:      toMetrics(s.Previous),
		Income:        toComparison(s.Income),
		Expense:       toComparison(s.Expense),
		NetProfit:     toComparison(s.NetProfit),
	}
}

func toDonut(d dashboard.Donut) donutResponse {
	resp := donutResponse{
		Slices: make([]sliceResponse, len(d.Slices)),
		Total:  respond.Money(d.Total),
	}

	for i, s := range d.Slices {
		resp.Slices[i] = sliceResponse{
			Category: s.Category,
			Label:    s.Label,
			Total:    respond.Money(s.Total),
			Share:    s.Share.StringFixed(2),
			Color:    s.Color,
		}
	}

	return resp
}

func toBreakdown(b *dashboard.Breakdown) breakdownResponse {
	return breakdownResponse{
		Assets:          toDonut(b.Assets),
		Liabilities:     toDonut(b.Liabilities),
		Equity:          toDonut(b.Equity),
		LiabilityEquity: toDonut(b.LiabilityEquity),
	}
}
