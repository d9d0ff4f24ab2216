package view

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/finance"
)

func TestRenderBars(t *testing.T) {
	bars := []dashboard.NetProfitBar{
		{Label: "2/3", NetProfit: decimal.NewFromInt(100)},
		{Label: "4/3", NetProfit: decimal.NewFromInt(-50)},
		{NetProfit: decimal.Zero},
	}

	lines := strings.Split(strings.TrimRight(RenderBars(bars, 10), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, 10, strings.Count(lines[0], "█"))
	assert.Equal(t, 5, strings.Count(lines[1], "█"))
	assert.Contains(t, lines[1], "-50.00")
	assert.True(t, strings.HasPrefix(lines[2], "-"))
	assert.Equal(t, 0, strings.Count(lines[2], "█"))
}

func TestRenderBars_AllZero(t *testing.T) {
	out := RenderBars([]dashboard.NetProfitBar{{Label: "1/1", NetProfit: decimal.Zero}}, 10)
	assert.NotContains(t, out, "█")
}

func TestParseAmountInput(t *testing.T) {
	d, err := parseAmountInput("RM 1,500.50")
	require.NoError(t, err)
	assert.Equal(t, "1500.5", d.String())

	_, err = parseAmountInput("0")
	assert.ErrorIs(t, err, errAmount)

	_, err = parseAmountInput("abc")
	assert.ErrorIs(t, err, errAmount)
}

func TestAddFields_Params(t *testing.T) {
	f := &addFields{
		kind:     entry.KindIncome,
		category: "daily",
		amount:   "250",
		date:     "2024-03-05",
		tax:      "6",
		dueDate:  "2024-12-31",
	}

	p, err := f.params()
	require.NoError(t, err)

	assert.Equal(t, "6", p.TaxPercent.String())
	assert.Nil(t, p.DueDate)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), p.OccurredOn)

	f.kind = entry.KindLiability
	f.category = "bank_loan"

	p, err = f.params()
	require.NoError(t, err)

	assert.True(t, p.TaxPercent.IsZero())
	require.NotNil(t, p.DueDate)
	assert.Equal(t, 2024, p.DueDate.Year())
}

func TestTimeframePicker_Preset(t *testing.T) {
	p := NewTimeframePicker(finance.PeriodMonth)
	p.now = func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC) }

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, finance.PeriodMonth, msg.Period)
	assert.Equal(t, "2024-03-01..2024-03-10", msg.Range.String())
	assert.True(t, p.IsSelecting())
}

func TestTimeframePicker_CustomInverted(t *testing.T) {
	p := NewTimeframePicker(finance.PeriodCustom)

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, p.IsSelecting())

	p.startInput.SetValue("2024-03-10")
	p.endInput.SetValue("2024-03-01")

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, p.err, finance.ErrInvalidRange)
}

func TestNewEditModel_PrefillsFields(t *testing.T) {
	e := entry.Entry{
		ID:          "i7",
		Kind:        entry.KindIncome,
		Amount:      decimal.RequireFromString("1200.50"),
		OccurredOn:  time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC),
		Category:    "weekly",
		TaxPercent:  decimal.NewFromInt(8),
		Name:        "Market stall",
		Description: "Saturday",
	}

	m := NewEditModel(nil, "en", e)
	require.True(t, m.Editing())
	assert.Equal(t, addStateDetails, m.state)

	p, err := m.fields.params()
	require.NoError(t, err)

	assert.Equal(t, entry.KindIncome, p.Kind)
	assert.Equal(t, "weekly", p.Category)
	assert.True(t, e.Amount.Equal(p.Amount))
	assert.Equal(t, e.OccurredOn, p.OccurredOn)
	assert.Equal(t, "8", p.TaxPercent.String())
	assert.Equal(t, "Market stall", p.Name)
	assert.Equal(t, "Saturday", p.Description)

	assert.False(t, NewAddModel(nil, "en").Editing())
}
