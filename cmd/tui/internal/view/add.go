package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/category"
	"github.com/MrJamesThe3rd/buku/internal/entry"
)

type addState int

const (
	addStateKind addState = iota
	addStateDetails
	addStateSaving
	addStateResult
)

// addFields lives on the heap so the form bindings survive model copies.
type addFields struct {
	kind        entry.Kind
	category    string
	amount      string
	date        string
	tax         string
	dueDate     string
	name        string
	description string
}

type AddModel struct {
	CommonModel
	svc  *entry.Service
	lang category.Lang

	state  addState
	fields *addFields
	form   *huh.Form
	// editID is set when the model edits an existing entry.
	editID string

	created *entry.Entry
	err     error
}

func NewAddModel(svc *entry.Service, lang category.Lang) AddModel {
	m := AddModel{svc: svc, lang: lang}
	m.reset()

	return m
}

// NewEditModel opens the details form prefilled with e; saving updates e.
func NewEditModel(svc *entry.Service, lang category.Lang, e entry.Entry) AddModel {
	m := AddModel{svc: svc, lang: lang, editID: e.ID, state: addStateDetails}
	m.fields = fieldsOf(e)
	m.form = m.detailsForm()

	return m
}

// Editing reports whether the model edits an existing entry.
func (m AddModel) Editing() bool {
	return m.editID != ""
}

func fieldsOf(e entry.Entry) *addFields {
	f := &addFields{
		kind:        e.Kind,
		category:    e.Category,
		amount:      e.Amount.String(),
		date:        e.OccurredOn.Format(time.DateOnly),
		name:        e.Name,
		description: e.Description,
	}

	if !e.TaxPercent.IsZero() {
		f.tax = e.TaxPercent.String()
	}

	return f
}

func (m *AddModel) reset() {
	m.state = addStateKind
	m.fields = &addFields{kind: entry.KindIncome, date: time.Now().Format(time.DateOnly)}
	m.form = m.kindForm()
	m.created = nil
	m.err = nil
}

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(addResultMsg); ok {
		m.state = addStateResult
		m.created = res.entry
		m.err = res.err

		return m, nil
	}

	key, isKey := msg.(tea.KeyMsg)

	switch m.state {
	case addStateKind, addStateDetails:
		if isKey && key.Type == tea.KeyEsc {
			if m.state == addStateDetails && !m.Editing() {
				m.state = addStateKind
				m.form = m.kindForm()

				return m, m.form.Init()
			}

			return m, Back
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		if m.state == addStateKind {
			m.state = addStateDetails
			m.fields.category = ""
			m.form = m.detailsForm()

			return m, m.form.Init()
		}

		params, err := m.fields.params()
		if err != nil {
			m.state = addStateResult
			m.err = err

			return m, nil
		}

		m.state = addStateSaving

		return m, m.saveCmd(params)

	case addStateResult:
		if isKey {
			switch key.String() {
			case "esc":
				return m, Back
			case "enter", "a":
				if m.Editing() {
					return m, Back
				}

				m.reset()
				return m, m.form.Init()
			}
		}
	}

	return m, nil
}

func (m AddModel) View() string {
	switch m.state {
	case addStateKind, addStateDetails:
		title := "Add Entry"
		if m.Editing() {
			title = "Edit " + string(m.fields.kind)
		}

		return pad.Render(titleStyle.Render(title) + "\n\n" + m.form.View() + "\n" + faintStyle.Render("Esc: back"))
	case addStateSaving:
		return pad.Render("Saving entry...")
	}

	if m.err != nil {
		return pad.Render(renderError(m.err) + "\n\n(Enter: try again | Esc: back)")
	}

	e := m.created
	hint := "(Enter: add another | Esc: back)"

	if m.Editing() {
		hint = "(Enter/Esc: back to entries)"
	}

	return pad.Render(successStyle.Render(fmt.Sprintf("Saved %s %s on %s (%s).",
		e.Kind, FormatAmount(e.Amount), FormatDate(e.OccurredOn), category.Label(e.Kind, e.Category, m.lang))) +
		"\n\n" + hint)
}

func (m AddModel) kindForm() *huh.Form {
	opts := make([]huh.Option[entry.Kind], 0, len(entry.Kinds()))
	for _, k := range entry.Kinds() {
		opts = append(opts, huh.NewOption(strings.ToUpper(string(k[:1]))+string(k[1:]), k))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[entry.Kind]().
				Title("Entry Type").
				Options(opts...).
				Value(&m.fields.kind),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) detailsForm() *huh.Form {
	f := m.fields
	kind := f.kind

	catalog := category.Options(kind)
	opts := make([]huh.Option[string], 0, len(catalog))

	for _, o := range catalog {
		label := o.Label
		if m.lang == category.LangEnglish {
			label = o.English
		}

		opts = append(opts, huh.NewOption(label, o.Code))
	}

	if f.category == "" && len(catalog) > 0 {
		f.category = catalog[0].Code
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(&f.category),
			huh.NewInput().
				Title("Amount (RM)").
				Placeholder("0.00").
				Value(&f.amount).
				Validate(func(s string) error {
					_, err := parseAmountInput(s)
					return err
				}),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.date).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tax %").
				Placeholder("0").
				Value(&f.tax).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					_, err := decimal.NewFromString(strings.TrimSpace(s))

					return err
				}),
		).WithHideFunc(func() bool { return kind != entry.KindIncome }),
		huh.NewGroup(
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&f.dueDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					return validateDate(s)
				}),
		).WithHideFunc(func() bool { return kind != entry.KindLiability }),
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&f.name),
			huh.NewText().Title("Description").Value(&f.description),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (f *addFields) params() (entry.CreateParams, error) {
	amount, err := parseAmountInput(f.amount)
	if err != nil {
		return entry.CreateParams{}, err
	}

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(f.date))
	if err != nil {
		return entry.CreateParams{}, fmt.Errorf("invalid date: %w", err)
	}

	p := entry.CreateParams{
		Kind:        f.kind,
		Amount:      amount,
		OccurredOn:  date,
		Category:    f.category,
		TaxPercent:  decimal.Zero,
		Name:        strings.TrimSpace(f.name),
		Description: strings.TrimSpace(f.description),
	}

	if f.kind == entry.KindIncome && strings.TrimSpace(f.tax) != "" {
		if p.TaxPercent, err = decimal.NewFromString(strings.TrimSpace(f.tax)); err != nil {
			return entry.CreateParams{}, fmt.Errorf("invalid tax: %w", err)
		}
	}

	if f.kind == entry.KindLiability && strings.TrimSpace(f.dueDate) != "" {
		due, err := time.Parse(time.DateOnly, strings.TrimSpace(f.dueDate))
		if err != nil {
			return entry.CreateParams{}, fmt.Errorf("invalid due date: %w", err)
		}

		p.DueDate = new(due)
	}

	return p, nil
}

var errAmount = errors.New("enter a positive amount, e.g. 1500.50")

func parseAmountInput(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	clean = strings.TrimSpace(strings.TrimPrefix(clean, "RM"))

	d, err := decimal.NewFromString(clean)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, errAmount
	}

	return d, nil
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

type addResultMsg struct {
	entry *entry.Entry
	err   error
}

func (m AddModel) saveCmd(p entry.CreateParams) tea.Cmd {
	svc, id := m.svc, m.editID

	return func() tea.Msg {
		ctx, cancel := RequestCtx()
		defer cancel()

		if id != "" {
			e, err := svc.Update(ctx, id, p)
			return addResultMsg{entry: e, err: err}
		}

		e, err := svc.Create(ctx, p)

		return addResultMsg{entry: e, err: err}
	}
}
