package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/finance"
)

// Charts computes the dashboard views a report is built from.
type Charts interface {
	Overview(ctx context.Context, r finance.DateRange, now time.Time) (*dashboard.Overview, error)
}

// Files are the paths written by Export.
type Files struct {
	CashFlow  string
	NetProfit string
	Summary   string
}

// Service writes report files for a date range.
type Service struct {
	charts Charts
	now    func() time.Time
}

func NewService(charts Charts) *Service {
	return &Service{charts: charts, now: time.Now}
}

// Export writes the cash-flow CSV, the net-profit CSV and the text summary
// of r into outputDir, creating it if needed.
func (s *Service) Export(ctx context.Context, r finance.DateRange, outputDir string) (*Files, error) {
	ov, err := s.charts.Overview(ctx, r, s.now())
	if err != nil {
		return nil, fmt.Errorf("computing charts: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stamp := fmt.Sprintf("%s_%s", r.Start.Format("20060102"), r.End.Format("20060102"))
	files := &Files{
		CashFlow:  filepath.Join(outputDir, "cashflow_"+stamp+".csv"),
		NetProfit: filepath.Join(outputDir, "netprofit_"+stamp+".csv"),
		Summary:   filepath.Join(outputDir, "summary_"+stamp+".txt"),
	}

	if err := writeFile(files.CashFlow, func(f *os.File) error {
		return WriteCashFlowCSV(f, ov.CashFlow)
	}); err != nil {
		return nil, err
	}

	if err := writeFile(files.NetProfit, func(f *os.File) error {
		return WriteNetProfitCSV(f, ov.NetProfit)
	}); err != nil {
		return nil, err
	}

	if err := os.WriteFile(files.Summary, []byte(Summary(ov.Summary, ov.CashFlow)), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	return files, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return nil
}
