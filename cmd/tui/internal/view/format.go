package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/finance"
)

const requestTimeout = 20 * time.Second

// FormatAmount renders an amount in ringgit with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return "RM " + d.StringFixed(2)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatChange renders a percent change with its trend arrow.
func FormatChange(c finance.Comparison) string {
	switch c.Trend {
	case finance.TrendUp:
		return successStyle.Render("▲ " + c.PercentChange.StringFixed(2) + "%")
	case finance.TrendDown:
		return errorStyle.Render("▼ " + c.PercentChange.Abs().StringFixed(2) + "%")
	}

	return faintStyle.Render("= 0.00%")
}

// RequestCtx returns a context with the standard timeout for backend calls.
func RequestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
