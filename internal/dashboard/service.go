package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/category"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/finance"
)

// Source supplies fresh snapshots of every entry collection.
type Source interface {
	Snapshot(ctx context.Context) (*entry.Snapshot, error)
}

type Options struct {
	// CashFlowThreshold is the day count above which the cash-flow series is
	// condensed to CashFlowPoints points.
	CashFlowThreshold int
	CashFlowPoints    int
	NetProfitBars     int
	Lang              category.Lang
}

func DefaultOptions() Options {
	return Options{
		CashFlowThreshold: 50,
		CashFlowPoints:    12,
		NetProfitBars:     5,
		Lang:              category.LangMalay,
	}
}

type Service struct {
	source Source
	opts   Options
}

func NewService(source Source, opts Options) *Service {
	return &Service{source: source, opts: opts}
}

func (s *Service) CashFlow(ctx context.Context, r finance.DateRange) (*CashFlowChart, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	return s.cashFlow(snap, r), nil
}

func (s *Service) NetProfit(ctx context.Context, r finance.DateRange) (*NetProfitChart, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	return s.netProfit(snap, r), nil
}

func (s *Service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	return summarize(snap, now), nil
}

func (s *Service) Breakdown(ctx context.Context) (*Breakdown, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	return s.breakdown(snap), nil
}

// Overview bundles every dashboard view computed from one snapshot.
type Overview struct {
	Summary   *Summary
	CashFlow  *CashFlowChart
	NetProfit *NetProfitChart
}

func (s *Service) Overview(ctx context.Context, r finance.DateRange, now time.Time) (*Overview, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	return &Overview{
		Summary:   summarize(snap, now),
		CashFlow:  s.cashFlow(snap, r),
		NetProfit: s.netProfit(snap, r),
	}, nil
}

func (s *Service) cashFlow(snap *entry.Snapshot, r finance.DateRange) *CashFlowChart {
	all := snap.All()
	daily := finance.Bucketize(all, r)

	maxPoints := 0
	aggregated := len(daily) > s.opts.CashFlowThreshold && s.opts.CashFlowPoints > 0

	if aggregated {
		maxPoints = s.opts.CashFlowPoints
	}

	series := finance.PadSeries(finance.Aggregate(daily, maxPoints))
	points := make([]CashFlowPoint, len(series))

	for i, b := range series {
		points[i] = CashFlowPoint{
			Label:   b.Label,
			Start:   b.Start,
			End:     b.End,
			CashIn:  b.CashIn,
			CashOut: b.CashOut,
			Net:     b.Net(),
		}
	}

	in, out := finance.SumBuckets(daily)
	bySource := finance.TotalsByBucket(all, r)

	sources := make([]SourceTotal, 0, len(bySource))
	for _, b := range finance.CashBuckets() {
		sources = append(sources, SourceTotal{
			Bucket:    b,
			Direction: b.Direction(),
			Total:     bySource[b],
		})
	}

	return &CashFlowChart{
		Range:      r,
		Days:       len(daily),
		Aggregated: aggregated,
		Points:     points,
		TotalIn:    in,
		TotalOut:   out,
		Net:        in.Sub(out),
		AverageIn:  average(in, len(daily)),
		AverageOut: average(out, len(daily)),
		Sources:    sources,
	}
}

func (s *Service) netProfit(snap *entry.Snapshot, r finance.DateRange) *NetProfitChart {
	days := finance.DailyProfit(snap.Income, snap.Expense, r)
	total := finance.SumProfit(days)

	bars := finance.ProfitBars(days, s.opts.NetProfitBars)
	out := make([]NetProfitBar, len(bars))

	for i, b := range bars {
		out[i] = NetProfitBar(b)
	}

	return &NetProfitChart{
		Range:            r,
		Days:             days,
		Bars:             out,
		TotalIncome:      total.Income,
		TotalExpense:     total.Expense,
		TotalTax:         total.Tax,
		TotalNetProfit:   total.NetProfit,
		AverageNetProfit: average(total.NetProfit, len(days)),
	}
}

func summarize(snap *entry.Snapshot, now time.Time) *Summary {
	month := finance.MonthRange(now)
	prev := finance.PreviousMonthRange(now)

	cur := finance.ComputeMetrics(finance.FilterRange(snap.Income, month), finance.FilterRange(snap.Expense, month))
	last := finance.ComputeMetrics(finance.FilterRange(snap.Income, prev), finance.FilterRange(snap.Expense, prev))

	return &Summary{
		Month:         month,
		PreviousMonth: prev,
		Current:       cur,
		Previous:      last,
		Income:        finance.Compare(cur.GrossProfit, last.GrossProfit),
		Expense:       finance.Compare(cur.TotalExpense, last.TotalExpense),
		NetProfit:     finance.Compare(cur.NetProfit, last.NetProfit),
	}
}

func (s *Service) breakdown(snap *entry.Snapshot) *Breakdown {
	assets := s.donut(entry.KindAsset, snap.Asset, AssetPalette)
	liabilities := s.donut(entry.KindLiability, snap.Liability, LiabilityPalette)
	equity := s.donut(entry.KindEquity, snap.Equity, EquityPalette)

	combined := Donut{
		Slices: append(append([]Slice{}, liabilities.Slices...), equity.Slices...),
		Total:  liabilities.Total.Add(equity.Total),
	}
	setShares(combined.Slices, combined.Total)

	return &Breakdown{
		Assets:          assets,
		Liabilities:     liabilities,
		Equity:          equity,
		LiabilityEquity: combined,
	}
}

func (s *Service) donut(kind entry.Kind, entries []entry.Entry, palette []string) Donut {
	totals := finance.TotalsByCategory(entries)
	slices := make([]Slice, len(totals))

	for i, t := range totals {
		slices[i] = Slice{
			Category: t.Category,
			Label:    category.Label(kind, t.Category, s.opts.Lang),
			Total:    t.Total,
			Color:    palette[i%len(palette)],
		}
	}

	total := finance.SumTotals(totals)
	setShares(slices, total)

	return Donut{Slices: slices, Total: total}
}

func setShares(slices []Slice, total decimal.Decimal) {
	for i := range slices {
		if total.IsZero() {
			slices[i].Share = decimal.Zero
			continue
		}

		slices[i].Share = slices[i].Total.Mul(decimal.NewFromInt(100)).DivRound(total, 2)
	}
}

func average(sum decimal.Decimal, days int) decimal.Decimal {
	if days == 0 {
		return decimal.Zero
	}

	return sum.DivRound(decimal.NewFromInt(int64(days)), 2)
}
