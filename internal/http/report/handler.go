package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/finance"
	dashboardHandler "github.com/MrJamesThe3rd/buku/internal/http/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/http/respond"
	"github.com/MrJamesThe3rd/buku/internal/report"
)

type Charts interface {
	Overview(ctx context.Context, r finance.DateRange, now time.Time) (*dashboard.Overview, error)
}

type Handler struct {
	charts Charts
	now    func() time.Time
}

func NewHandler(charts Charts, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{charts: charts, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/cashflow.csv", h.cashFlowCSV)
	r.Get("/netprofit.csv", h.netProfitCSV)
	r.Get("/summary.txt", h.summary)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) (*dashboard.Overview, finance.DateRange, bool) {
	now := h.now()

	rng, err := dashboardHandler.RangeFromQuery(r, now)
	if err != nil {
		respond.Error(w, err)
		return nil, rng, false
	}

	ov, err := h.charts.Overview(r.Context(), rng, now)
	if err != nil {
		respond.Error(w, err)
		return nil, rng, false
	}

	return ov, rng, true
}

func (h *Handler) cashFlowCSV(w http.ResponseWriter, r *http.Request) {
	ov, rng, ok := h.overview(w, r)
	if !ok {
		return
	}

	setAttachment(w, "text/csv", "cashflow", rng, "csv")

	if err := report.WriteCashFlowCSV(w, ov.CashFlow); err != nil {
		slog.Error("failed to write cash flow csv", "error", err)
	}
}

func (h *Handler) netProfitCSV(w http.ResponseWriter, r *http.Request) {
	ov, rng, ok := h.overview(w, r)
	if !ok {
		return
	}

	setAttachment(w, "text/csv", "netprofit", rng, "csv")

	if err := report.WriteNetProfitCSV(w, ov.NetProfit); err != nil {
		slog.Error("failed to write net profit csv", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ov, _, ok := h.overview(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(report.Summary(ov.Summary, ov.CashFlow))); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}

func setAttachment(w http.ResponseWriter, contentType, name string, rng finance.DateRange, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
		fmt.Sprintf("%s_%s_%s.%s", name, rng.Start.Format("20060102"), rng.End.Format("20060102"), ext)))
}
