package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
)

type BreakdownModel struct {
	CommonModel
	svc *dashboard.Service

	breakdown *dashboard.Breakdown
	loading   bool
	err       error
}

func NewBreakdownModel(svc *dashboard.Service) BreakdownModel {
	return BreakdownModel{svc: svc, loading: true}
}

func (m BreakdownModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BreakdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case breakdownMsg:
		m.loading = false
		m.breakdown = msg.breakdown
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m BreakdownModel) View() string {
	if m.loading {
		return pad.Render("Loading breakdown...")
	}

	if m.err != nil {
		return pad.Render(renderError(m.err) + "\n\n(r: retry | Esc: back)")
	}

	b := m.breakdown

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderDonut("Assets", b.Assets),
			"    ",
			renderDonut("Liabilities + Equity", b.LiabilityEquity),
		),
		"",
		faintStyle.Render("r: refresh | Esc: back"),
	))
}

// renderDonut lists the slices of a donut chart as a legend with a colored
// swatch, the amount and the share of the total.
func renderDonut(title string, d dashboard.Donut) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	if len(d.Slices) == 0 {
		sb.WriteString(faintStyle.Render("No entries yet."))
		return sb.String()
	}

	for _, s := range d.Slices {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
		fmt.Fprintf(&sb, "%s %-26s %16s %7s%%\n", swatch, s.Label, FormatAmount(s.Total), s.Share.StringFixed(2))
	}

	fmt.Fprintf(&sb, "\n  %-26s %16s", "Total", FormatAmount(d.Total))

	return sb.String()
}

type breakdownMsg struct {
	breakdown *dashboard.Breakdown
	err       error
}

func (m BreakdownModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		b, err := m.svc.Breakdown(ctx)

		return breakdownMsg{breakdown: b, err: err}
	}
}
