package view

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/buku/internal/backend"
)

// LoggedInMsg is emitted once the client holds a usable token.
type LoggedInMsg struct{}

type credentials struct {
	email    string
	password string
}

type LoginModel struct {
	CommonModel
	client *backend.Client

	creds   *credentials
	form    *huh.Form
	loading bool
	err     error
}

func NewLoginModel(client *backend.Client, email string) LoginModel {
	m := LoginModel{client: client, creds: &credentials{email: email}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}

		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&m.creds.email).Validate(required),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&m.creds.password).Validate(required),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(loginResultMsg); ok {
		m.loading = false

		if res.err != nil {
			m.err = res.err
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{} }
	}

	if m.loading {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.loading = true
	m.err = nil

	return m, m.loginCmd(m.creds.email, m.creds.password)
}

func (m LoginModel) View() string {
	if m.loading {
		return pad.Render("Signing in...")
	}

	out := titleStyle.Render("Sign in") + "\n\n" + m.form.View()
	if m.err != nil {
		out += "\n" + renderError(m.err)
	}

	return pad.Render(out + "\n" + faintStyle.Render("Ctrl+C: quit"))
}

type loginResultMsg struct {
	err error
}

func (m LoginModel) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		_, err := m.client.Login(ctx, strings.TrimSpace(email), password)

		return loginResultMsg{err: err}
	}
}
