package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/buku/internal/finance"
)

var periodLabels = map[finance.Period]string{
	finance.PeriodToday:   "Today",
	finance.PeriodWeek:    "Last 7 Days",
	finance.PeriodMonth:   "This Month",
	finance.PeriodQuarter: "This Quarter",
	finance.PeriodYear:    "This Year",
	finance.PeriodCustom:  "Custom Range",
}

// TimeframeSelectedMsg is emitted when the user has picked a valid range.
type TimeframeSelectedMsg struct {
	Period finance.Period
	Range  finance.DateRange
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// TimeframePicker selects one of the period presets or a custom range.
type TimeframePicker struct {
	state   timeframeState
	periods []finance.Period
	cursor  int
	now     func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(initial finance.Period) TimeframePicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	periods := finance.Periods()

	cursor := 0
	for i, p := range periods {
		if p == initial {
			cursor = i
		}
	}

	return TimeframePicker{
		state:      timeframeStateSelect,
		periods:    periods,
		cursor:     cursor,
		now:        time.Now,
		startInput: si,
		endInput:   ei,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(key)
		case timeframeStateCustom:
			if next, cmd, handled := m.updateCustom(key); handled {
				return next, cmd
			}
		}
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.periods)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		period := m.periods[m.cursor]
		if period == finance.PeriodCustom {
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		}

		r, err := period.Range(m.now(), nil, nil)
		if err != nil {
			m.err = err
			return m, nil
		}

		return m, selected(period, r)
	}

	return m, nil
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
		} else {
			m.endInput.Focus()
		}

		return m, textinput.Blink, true

	case "enter":
		start, err := time.Parse(time.DateOnly, strings.TrimSpace(m.startInput.Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil, true
		}

		end, err := time.Parse(time.DateOnly, strings.TrimSpace(m.endInput.Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil, true
		}

		r, err := finance.PeriodCustom.Range(m.now(), &start, &end)
		if err != nil {
			m.err = err
			return m, nil, true
		}

		m.err = nil

		return m, selected(finance.PeriodCustom, r), true

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	var cmds []tea.Cmd

	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func selected(p finance.Period, r finance.DateRange) tea.Cmd {
	return func() tea.Msg {
		return TimeframeSelectedMsg{Period: p, Range: r}
	}
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + renderError(m.err)
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	var sb strings.Builder

	sb.WriteString("Select Timeframe:\n\n")

	for i, p := range m.periods {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		fmt.Fprintf(&sb, "%s %s\n", cursor, periodLabels[p])
	}

	sb.WriteString("\n(Enter to select, Esc to back)")

	return sb.String() + errStr
}

// IsSelecting reports whether the picker shows the preset list.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
