package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/buku/internal/finance"
	"github.com/MrJamesThe3rd/buku/internal/report"
)

const (
	defaultReportDir = "./reports"
	exportTimeout    = 2 * time.Minute
)

type exportStep int

const (
	exportPickRange exportStep = iota
	exportPickDir
	exportWriting
	exportDone
)

// ExportModel writes the report files for a chosen range into a directory.
type ExportModel struct {
	CommonModel
	svc *report.Service

	step    exportStep
	picker  TimeframePicker
	rng     finance.DateRange
	dirForm *huh.Form
	dir     *string
	spinner spinner.Model

	written *report.Files
	summary string
	err     error
}

func NewExportModel(svc *report.Service) ExportModel {
	dir := defaultReportDir

	s := spinner.New()
	s.Spinner = spinner.Dot

	return ExportModel{
		svc:     svc,
		picker:  NewTimeframePicker(finance.PeriodMonth),
		dir:     &dir,
		spinner: s,
	}
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.rng = msg.Range
		m.step = exportPickDir
		m.dirForm = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Report directory").
				Description("Created when missing").
				Placeholder(defaultReportDir).
				Value(m.dir),
		)).WithWidth(50).WithShowHelp(false)

		return m, m.dirForm.Init()

	case exportDoneMsg:
		m.step = exportDone
		m.written, m.summary, m.err = msg.files, msg.summary, msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.escape()
		}

		if m.step == exportDone && msg.String() == "n" {
			m.step = exportPickRange
			m.picker.Reset()

			return m, nil
		}
	}

	var cmd tea.Cmd

	switch m.step {
	case exportPickRange:
		m.picker, cmd = m.picker.Update(msg)
	case exportPickDir:
		return m.updateDirForm(msg)
	case exportWriting:
		m.spinner, cmd = m.spinner.Update(msg)
	}

	return m, cmd
}

func (m ExportModel) escape() (tea.Model, tea.Cmd) {
	switch m.step {
	case exportPickRange:
		if !m.picker.IsSelecting() {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(tea.KeyMsg{Type: tea.KeyEsc})

			return m, cmd
		}

		return m, Back
	case exportPickDir:
		m.step = exportPickRange
		m.picker.Reset()

		return m, nil
	case exportDone:
		return m, Back
	}

	return m, nil
}

func (m ExportModel) updateDirForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.dirForm.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.dirForm = f
	}

	if m.dirForm.State != huh.StateCompleted {
		return m, cmd
	}

	dir := strings.TrimSpace(*m.dir)
	if dir == "" {
		dir = defaultReportDir
	}

	m.step = exportWriting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.export(m.rng, dir))
}

type exportDoneMsg struct {
	files   *report.Files
	summary string
	err     error
}

func (m ExportModel) export(r finance.DateRange, dir string) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		files, err := svc.Export(ctx, r, dir)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		text, err := os.ReadFile(files.Summary)
		if err != nil {
			return exportDoneMsg{files: files, err: fmt.Errorf("reading summary: %w", err)}
		}

		return exportDoneMsg{files: files, summary: string(text)}
	}
}

func (m ExportModel) View() string {
	switch m.step {
	case exportPickRange:
		return pad.Render(m.picker.View())
	case exportPickDir:
		return pad.Render(titleStyle.Render("Export "+m.rng.String()) + "\n\n" + m.dirForm.View())
	case exportWriting:
		return pad.Render(m.spinner.View() + " Writing reports for " + m.rng.String())
	}

	if m.err != nil {
		return pad.Render(renderError(m.err) + "\n\n" + faintStyle.Render("n: new export | Esc: back"))
	}

	var sb strings.Builder

	sb.WriteString(successStyle.Render("Reports written") + "\n\n")

	for _, p := range []string{m.written.CashFlow, m.written.NetProfit, m.written.Summary} {
		sb.WriteString("  " + p + "\n")
	}

	sb.WriteString("\n" + m.summary + "\n")
	sb.WriteString(faintStyle.Render("n: new export | Esc: back"))

	return pad.Render(sb.String())
}
