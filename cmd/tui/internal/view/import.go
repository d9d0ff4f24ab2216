package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/buku/internal/category"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	entrySvc  *entry.Service
	importSvc *importer.Service
	lang      category.Lang

	state      importState
	filePicker filepicker.Model
	path       string
	preview    table.Model
	params     []entry.CreateParams

	status string
	err    error
}

func NewImportModel(entrySvc *entry.Service, importSvc *importer.Service, lang category.Lang) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		entrySvc:   entrySvc,
		importSvc:  importSvc,
		lang:       lang,
		filePicker: fp,
		preview: newTable([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Type", Width: 10},
			{Title: "Category", Width: 24},
			{Title: "Amount", Width: 14},
			{Title: "Tax %", Width: 6},
			{Title: "Description", Width: 30},
		}, 12),
	}
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.params = msg.params
		m.preview.SetRows(m.previewRows())
		m.state = importStatePreview

		return m, nil

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Imported %d of %d entries before failing: %v", msg.count, len(m.params), msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d entries.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.path = path
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.params = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	case importStateParsing, importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" && len(m.params) > 0 {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Creating %d entries...", len(m.params))

		return m, m.importCmd(m.params)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) previewRows() []table.Row {
	rows := make([]table.Row, 0, len(m.params))

	for _, p := range m.params {
		tax := ""
		if !p.TaxPercent.IsZero() {
			tax = p.TaxPercent.String()
		}

		rows = append(rows, table.Row{
			FormatDate(p.OccurredOn),
			string(p.Kind),
			category.Label(p.Kind, p.Category, m.lang),
			p.Amount.StringFixed(2),
			tax,
			p.Description,
		})
	}

	return rows
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return pad.Render(fmt.Sprintf("Select CSV file to import:\n\n%s", m.filePicker.View()))
	case importStateParsing, importStateImporting:
		return pad.Render(m.status)
	case importStatePreview:
		if len(m.params) == 0 {
			return pad.Render("No entries found in " + m.path + "\n\n(Esc to go back)")
		}

		return pad.Render(fmt.Sprintf("%s\n\n%s\n\n%s",
			titleStyle.Render(fmt.Sprintf("%d entries in %s", len(m.params), m.path)),
			m.preview.View(),
			faintStyle.Render("Enter: import all | Esc: cancel"),
		))
	}

	if m.err != nil {
		return pad.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return pad.Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
}

type parsedMsg struct {
	params []entry.CreateParams
	err    error
}

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		params, err := m.importSvc.Import(importer.FormatEntries, f)

		return parsedMsg{params: params, err: err}
	}
}

func (m ImportModel) importCmd(params []entry.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		created, err := m.entrySvc.CreateBatch(ctx, params)

		return importResultMsg{count: len(created), err: err}
	}
}
