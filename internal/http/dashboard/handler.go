package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/finance"
	"github.com/MrJamesThe3rd/buku/internal/http/respond"
)

type Service interface {
	CashFlow(ctx context.Context, r finance.DateRange) (*dashboard.CashFlowChart, error)
	NetProfit(ctx context.Context, r finance.DateRange) (*dashboard.NetProfitChart, error)
	Summary(ctx context.Context, now time.Time) (*dashboard.Summary, error)
	Breakdown(ctx context.Context) (*dashboard.Breakdown, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}

	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/cashflow", h.cashFlow)
	r.Get("/netprofit", h.netProfit)
	r.Get("/breakdown", h.breakdown)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	at := h.now()

	if s := r.URL.Query().Get("date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		at = t
	}

	s, err := h.svc.Summary(r.Context(), at)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummary(s))
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	rng, err := RangeFromQuery(r, h.now())
	if err != nil {
		respond.Error(w, err)
		return
	}

	chart, err := h.svc.CashFlow(r.Context(), rng)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCashFlow(chart))
}

func (h *Handler) netProfit(w http.ResponseWriter, r *http.Request) {
	rng, err := RangeFromQuery(r, h.now())
	if err != nil {
		respond.Error(w, err)
		return
	}

	chart, err := h.svc.NetProfit(r.Context(), rng)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toNetProfit(chart))
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Breakdown(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBreakdown(b))
}
