package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/buku/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/buku/internal/backend"
	"github.com/MrJamesThe3rd/buku/internal/category"
	"github.com/MrJamesThe3rd/buku/internal/config"
	"github.com/MrJamesThe3rd/buku/internal/dashboard"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/importer"
	"github.com/MrJamesThe3rd/buku/internal/logging"
	"github.com/MrJamesThe3rd/buku/internal/report"
)

const logFile = "buku-tui.log"

type model struct {
	cfg              *config.Config
	client           *backend.Client
	entryService     *entry.Service
	dashboardService *dashboard.Service
	importService    *importer.Service
	reportService    *report.Service
	lang             category.Lang

	currentView View
	notice      string

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	breakdownView view.BreakdownModel
	entriesView   view.EntriesModel
	addView       view.AddModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewBreakdown View = 2
	ViewEntries   View = 3
	ViewAdd       View = 4
	ViewImport    View = 5
	ViewExport    View = 6
	ViewLogin     View = 7
)

func initialModel(cfg *config.Config) model {
	client := backend.New(backend.Options{
		BaseURL: cfg.Backend.URL,
		Token:   cfg.Backend.Token,
		Timeout: cfg.Backend.Timeout,
		RPS:     cfg.Backend.RPS,
	})

	opts := cfg.DashboardOptions()

	var (
		entrySvc     = entry.NewService(client)
		dashboardSvc = dashboard.NewService(entrySvc, opts)
		importSvc    = importer.NewService()
		reportSvc    = report.NewService(dashboardSvc)
	)

	m := model{
		cfg:              cfg,
		client:           client,
		entryService:     entrySvc,
		dashboardService: dashboardSvc,
		importService:    importSvc,
		reportService:    reportSvc,
		lang:             opts.Lang,
		currentView:      ViewMenu,
		loginView:        view.NewLoginModel(client, cfg.Backend.Email),
	}

	if err := backend.CheckToken(client.Token(), time.Now()); err != nil {
		slog.Info("login required", "reason", err)
		m.currentView = ViewLogin
	}

	return m
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		if m.currentView == ViewAdd && m.addView.Editing() {
			m.currentView = ViewEntries
			return m, m.entriesView.Init()
		}

		m.currentView = ViewMenu

		return m, nil
	case view.EditEntryMsg:
		m.currentView = ViewAdd
		m.addView = view.NewEditModel(m.entryService, m.lang, msg.Entry)

		return m, m.addView.Init()
	case view.LoggedInMsg:
		m.currentView = ViewMenu
		m.notice = "Signed in."

		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewBreakdown:
		var newModel tea.Model
		newModel, cmd = m.breakdownView.Update(msg)
		m.breakdownView = newModel.(view.BreakdownModel)
	case ViewEntries:
		var newModel tea.Model
		newModel, cmd = m.entriesView.Update(msg)
		m.entriesView = newModel.(view.EntriesModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewDashboard
		m.dashboardView = view.NewDashboardModel(m.dashboardService)

		return m, m.dashboardView.Init()
	case "2":
		m.currentView = ViewBreakdown
		m.breakdownView = view.NewBreakdownModel(m.dashboardService)

		return m, m.breakdownView.Init()
	case "3":
		m.currentView = ViewEntries
		m.entriesView = view.NewEntriesModel(m.entryService, m.lang)

		return m, m.entriesView.Init()
	case "4":
		m.currentView = ViewAdd
		m.addView = view.NewAddModel(m.entryService, m.lang)

		return m, m.addView.Init()
	case "5":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.entryService, m.importService, m.lang)

		return m, m.importView.Init()
	case "6":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.reportService)

		return m, m.exportView.Init()
	case "l":
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.client, m.cfg.Backend.Email)

		return m, m.loginView.Init()
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return m.viewMenu()
	case ViewLogin:
		return m.loginView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewBreakdown:
		return m.breakdownView.View()
	case ViewEntries:
		return m.entriesView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func (m model) viewMenu() string {
	status := ""
	if exp, ok := backend.TokenExpiry(m.client.Token()); ok {
		status = fmt.Sprintf("\nSession valid until %s\n", exp.Local().Format("2006-01-02 15:04"))
	}

	if m.notice != "" {
		status += "\n" + m.notice + "\n"
	}

	return lipgloss.NewStyle().Padding(2).Render(
		m.cfg.App.Name + " TUI\n" + status + "\n" +
			"1. Dashboard\n" +
			"2. Asset & Liability Breakdown\n" +
			"3. Entries\n" +
			"4. Add Entry\n" +
			"5. Import CSV\n" +
			"6. Export Report\n\n" +
			"l. Sign in again\n" +
			"q. Quit",
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	logging.Setup(f, logging.FormatText, cfg.App.LogLevel)

	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
