package report_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/finance"
	"github.com/MrJamesThe3rd/buku/internal/report"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func sampleCashFlow() *dashboard.CashFlowChart {
	return &dashboard.CashFlowChart{
		Range: finance.DateRange{Start: day(1), End: day(2)},
		Days:  2,
		Points: []dashboard.CashFlowPoint{
			{Label: "1/3", CashIn: dec("100"), CashOut: dec("40.5"), Net: dec("59.5")},
			{Label: "2/3", CashIn: decimal.Zero, CashOut: dec("10"), Net: dec("-10")},
		},
		TotalIn:    dec("100"),
		TotalOut:   dec("50.5"),
		Net:        dec("49.5"),
		AverageIn:  dec("50"),
		AverageOut: dec("25.25"),
		Sources: []dashboard.SourceTotal{
			{Bucket: finance.BucketIncome, Direction: finance.CashIn, Total: dec("100")},
			{Bucket: finance.BucketEquityIn, Direction: finance.CashIn, Total: decimal.Zero},
			{Bucket: finance.BucketSpending, Direction: finance.CashOut, Total: dec("50.5")},
		},
	}
}

func sampleSummary() *dashboard.Summary {
	return &dashboard.Summary{
		Month:         finance.MonthRange(day(15)),
		PreviousMonth: finance.PreviousMonthRange(day(15)),
		Current:       finance.Metrics{TaxComponent: dec("6")},
		Income:        finance.Compare(dec("200"), dec("100")),
		Expense:       finance.Compare(dec("50"), dec("100")),
		NetProfit:     finance.Compare(dec("144"), dec("144")),
	}
}

func TestWriteCashFlowCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, report.WriteCashFlowCSV(&buf, sampleCashFlow()))

	want := "label,cash_in,cash_out,net\n" +
		"1/3,100.00,40.50,59.50\n" +
		"2/3,0.00,10.00,-10.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteNetProfitCSV(t *testing.T) {
	chart := &dashboard.NetProfitChart{
		Days: []finance.ProfitDay{
			{Date: day(1), Income: dec("100"), Expense: dec("20"), Tax: dec("6"), NetProfit: dec("74")},
		},
	}

	var buf bytes.Buffer

	require.NoError(t, report.WriteNetProfitCSV(&buf, chart))
	assert.Equal(t, "date,income,expense,tax,net_profit\n2024-03-01,100.00,20.00,6.00,74.00\n", buf.String())
}

func TestSummary(t *testing.T) {
	out := report.Summary(sampleSummary(), sampleCashFlow())

	assert.Contains(t, out, "Month 2024-03-01..2024-03-31 (previous 2024-02-01..2024-02-29)")
	assert.Contains(t, out, "RM 200.00 | 100.0% ▲")
	assert.Contains(t, out, "RM 50.00 | -50.0% ▼")
	assert.Contains(t, out, "RM 144.00 | 0.0% =")
	assert.Contains(t, out, "RM 6.00")
	assert.Contains(t, out, "Cash flow 2024-03-01..2024-03-02 (2 days)")
	assert.Contains(t, out, "avg 25.25/day")
	assert.Contains(t, out, "income (cash_in): RM 100.00")
	assert.NotContains(t, out, "equity_in")
}

func TestSummary_Nil(t *testing.T) {
	assert.Empty(t, report.Summary(nil, nil))
	assert.False(t, strings.HasPrefix(report.Summary(nil, sampleCashFlow()), "\n"))
}

type fakeCharts struct {
	overview *dashboard.Overview
	err      error
}

func (f fakeCharts) Overview(context.Context, finance.DateRange, time.Time) (*dashboard.Overview, error) {
	return f.overview, f.err
}

func TestService_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := finance.DateRange{Start: day(1), End: day(2)}

	svc := report.NewService(fakeCharts{overview: &dashboard.Overview{
		Summary:   sampleSummary(),
		CashFlow:  sampleCashFlow(),
		NetProfit: &dashboard.NetProfitChart{},
	}})

	files, err := svc.Export(context.Background(), r, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "cashflow_20240301_20240302.csv"), files.CashFlow)

	data, err := os.ReadFile(files.CashFlow)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "label,cash_in,cash_out,net\n"))

	data, err = os.ReadFile(files.Summary)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cash flow")

	_, err = os.Stat(files.NetProfit)
	assert.NoError(t, err)
}

func TestService_ExportError(t *testing.T) {
	svc := report.NewService(fakeCharts{err: errors.New("backend down")})

	_, err := svc.Export(context.Background(), finance.DateRange{Start: day(1), End: day(1)}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}
