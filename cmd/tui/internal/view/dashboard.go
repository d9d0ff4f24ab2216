package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/finance"
)

const barWidth = 30

type dashboardState int

const (
	dashboardStateTimeframe dashboardState = iota
	dashboardStateLoading
	dashboardStateShow
)

type DashboardModel struct {
	CommonModel
	svc *dashboard.Service

	state     dashboardState
	picker    TimeframePicker
	spinner   spinner.Model
	cashTable table.Model

	rng      finance.DateRange
	overview *dashboard.Overview
	err      error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{
		svc:       svc,
		picker:    NewTimeframePicker(finance.PeriodMonth),
		spinner:   s,
		cashTable: newTable(cashFlowColumns(), 12),
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.rng = msg.Range
		m.state = dashboardStateLoading

		return m, tea.Batch(m.spinner.Tick, m.loadCmd(msg.Range))

	case overviewMsg:
		m.state = dashboardStateShow
		m.err = msg.err
		m.overview = msg.overview

		if msg.overview != nil {
			m.cashTable.SetRows(cashFlowRows(msg.overview.CashFlow))
		}

		return m, nil
	}

	switch m.state {
	case dashboardStateTimeframe:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case dashboardStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case dashboardStateShow:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				return m, Back
			case "t":
				m.state = dashboardStateTimeframe
				m.picker.Reset()

				return m, nil
			case "r":
				m.state = dashboardStateLoading
				return m, tea.Batch(m.spinner.Tick, m.loadCmd(m.rng))
			}
		}

		var cmd tea.Cmd
		m.cashTable, cmd = m.cashTable.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m DashboardModel) View() string {
	switch m.state {
	case dashboardStateTimeframe:
		return pad.Render(m.picker.View())
	case dashboardStateLoading:
		return pad.Render(fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.rng))
	}

	if m.err != nil {
		return pad.Render(renderError(m.err) + "\n\n(r: retry | t: timeframe | Esc: back)")
	}

	ov := m.overview
	cf := ov.CashFlow
	np := ov.NetProfit

	cashTitle := fmt.Sprintf("Cash Flow %s", cf.Range)
	if cf.Aggregated {
		cashTitle += fmt.Sprintf(" (%d days in %d points)", cf.Days, len(cf.Points))
	}

	cashTotals := fmt.Sprintf("In %s | Out %s | Net %s\nAvg/day In %s | Out %s",
		FormatAmount(cf.TotalIn), FormatAmount(cf.TotalOut), FormatAmount(cf.Net),
		FormatAmount(cf.AverageIn), FormatAmount(cf.AverageOut))

	profit := fmt.Sprintf("Net Profit %s\n\n%s\nTotal %s | Tax %s | Avg/day %s",
		np.Range,
		RenderBars(np.Bars, barWidth),
		FormatAmount(np.TotalNetProfit), FormatAmount(np.TotalTax), FormatAmount(np.AverageNetProfit))

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderSummary(ov.Summary),
		"",
		titleStyle.Render(cashTitle),
		m.cashTable.View(),
		cashTotals,
	)

	right := lipgloss.NewStyle().
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(profit)

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
		"",
		faintStyle.Render("t: timeframe | r: refresh | Esc: back"),
	))
}

func renderSummary(s *dashboard.Summary) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("This Month %s vs %s", s.Month, s.PreviousMonth)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Income      %-18s %s\n", FormatAmount(s.Income.Current), FormatChange(s.Income))
	fmt.Fprintf(&sb, "Expense     %-18s %s\n", FormatAmount(s.Expense.Current), FormatChange(s.Expense))
	fmt.Fprintf(&sb, "EBITDA      %-18s\n", FormatAmount(s.Current.TaxComponent))
	fmt.Fprintf(&sb, "Net Profit  %-18s %s", FormatAmount(s.NetProfit.Current), FormatChange(s.NetProfit))

	return sb.String()
}

// RenderBars draws one horizontal bar per net-profit bar, scaled to the
// largest absolute value. Losses are drawn in red.
func RenderBars(bars []dashboard.NetProfitBar, width int) string {
	peak := decimal.Zero
	for _, b := range bars {
		if a := b.NetProfit.Abs(); a.GreaterThan(peak) {
			peak = a
		}
	}

	var sb strings.Builder

	for _, b := range bars {
		n := 0
		if !peak.IsZero() {
			n = int(b.NetProfit.Abs().Mul(decimal.NewFromInt(int64(width))).Div(peak).Round(0).IntPart())
		}

		bar := strings.Repeat("█", n)
		if b.NetProfit.IsNegative() {
			bar = errorStyle.Render(bar)
		} else {
			bar = successStyle.Render(bar)
		}

		label := b.Label
		if label == "" {
			label = "-"
		}

		fmt.Fprintf(&sb, "%-6s %s %s\n", label, bar, b.NetProfit.StringFixed(2))
	}

	return sb.String()
}

func cashFlowColumns() []table.Column {
	return []table.Column{
		{Title: "Period", Width: 12},
		{Title: "In", Width: 14},
		{Title: "Out", Width: 14},
		{Title: "Net", Width: 14},
	}
}

func cashFlowRows(cf *dashboard.CashFlowChart) []table.Row {
	rows := make([]table.Row, 0, len(cf.Points))
	for _, p := range cf.Points {
		label := p.Label
		if label == "" {
			label = "-"
		}

		rows = append(rows, table.Row{label, p.CashIn.StringFixed(2), p.CashOut.StringFixed(2), p.Net.StringFixed(2)})
	}

	return rows
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

type overviewMsg struct {
	overview *dashboard.Overview
	err      error
}

func (m DashboardModel) loadCmd(r finance.DateRange) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		ov, err := m.svc.Overview(ctx, r, time.Now())

		return overviewMsg{overview: ov, err: err}
	}
}
