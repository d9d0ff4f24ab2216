package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/buku/internal/category"
	"github.com/MrJamesThe3rd/buku/internal/entry"
)

type entriesState int

const (
	entriesStateBrowse entriesState = iota
	entriesStateConfirmDelete
)

// EditEntryMsg asks the app to open the edit form for Entry.
type EditEntryMsg struct {
	Entry entry.Entry
}

type EntriesModel struct {
	CommonModel
	svc  *entry.Service
	lang category.Lang

	state   entriesState
	kindIdx int
	table   table.Model
	entries []entry.Entry
	form    *huh.Form
	confirm *bool

	loading bool
	status  string
	err     error
}

func NewEntriesModel(svc *entry.Service, lang category.Lang) EntriesModel {
	return EntriesModel{
		svc:  svc,
		lang: lang,
		table: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Category", Width: 24},
			{Title: "Amount", Width: 16},
			{Title: "Tax %", Width: 6},
			{Title: "Name / Description", Width: 40},
		}, 15),
		loading: true,
	}
}

func (m EntriesModel) kind() entry.Kind {
	return entry.Kinds()[m.kindIdx]
}

func (m EntriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesMsg:
		m.loading = false
		m.err = msg.err
		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case deleteMsg:
		m.state = entriesStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
			return m, nil
		}

		m.status = "Entry deleted."
		m.loading = true

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == entriesStateConfirmDelete {
		return m.updateConfirm(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "k":
			m.kindIdx = (m.kindIdx + 1) % len(entry.Kinds())
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "x", "delete":
			return m.enterConfirm()
		case "e":
			if idx := m.table.Cursor(); idx >= 0 && idx < len(m.entries) {
				e := m.entries[idx]
				return m, func() tea.Msg { return EditEntryMsg{Entry: e} }
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EntriesModel) enterConfirm() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return m, nil
	}

	e := m.entries[idx]
	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s %s of %s?", e.Kind, FormatAmount(e.Amount), FormatDate(e.OccurredOn))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = entriesStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m EntriesModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = entriesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		m.state = entriesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(m.entries[m.table.Cursor()])
}

func (m EntriesModel) View() string {
	header := fmt.Sprintf("[k] Kind: %s (%d entries)", activeStyle(string(m.kind())), len(m.entries))

	var body string

	switch {
	case m.loading:
		body = "Loading entries..."
	case m.err != nil:
		body = renderError(m.err)
	case m.state == entriesStateConfirmDelete && m.form != nil:
		body = m.form.View()
	default:
		body = m.table.View()
	}

	out := header + "\n\n" + body
	if m.status != "" {
		out = faintStyle.Render(m.status) + "\n" + out
	}

	return pad.Render(out + "\n\n" + faintStyle.Render("k: kind | e: edit | x: delete | r: refresh | Esc: back"))
}

func (m *EntriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))

	for _, e := range m.entries {
		tax := ""
		if !e.TaxPercent.IsZero() {
			tax = e.TaxPercent.String()
		}

		text := e.Name
		if e.Description != "" {
			if text != "" {
				text += " / "
			}

			text += e.Description
		}

		rows = append(rows, table.Row{
			FormatDate(e.OccurredOn),
			category.Label(e.Kind, e.Category, m.lang),
			e.Amount.StringFixed(2),
			tax,
			text,
		})
	}

	m.table.SetRows(rows)
}

type entriesMsg struct {
	entries []entry.Entry
	err     error
}

func (m EntriesModel) loadCmd() tea.Cmd {
	kind := m.kind()

	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		entries, err := m.svc.List(ctx, entry.ListFilter{Kind: kind})

		return entriesMsg{entries: entries, err: err}
	}
}

type deleteMsg struct {
	err error
}

func (m EntriesModel) deleteCmd(e entry.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		return deleteMsg{err: m.svc.Delete(ctx, e.Kind, e.ID)}
	}
}
