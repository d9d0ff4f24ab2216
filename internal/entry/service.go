package entry

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entry
type Repository interface {
	ListEntries(ctx context.Context, kind Kind) ([]Entry, error)
	CreateEntry(ctx context.Context, params CreateParams) (*Entry, error)
	UpdateEntry(ctx context.Context, id string, params CreateParams) (*Entry, error)
	DeleteEntry(ctx context.Context, kind Kind, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Kind        Kind
	Amount      decimal.Decimal
	OccurredOn  time.Time
	Category    string
	TaxPercent  decimal.Decimal
	Name        string
	Description string
	DueDate     *time.Time // liabilities only
}

// ListFilter narrows a listing to one kind and an inclusive calendar-day window.
type ListFilter struct {
	Kind      Kind
	StartDate *time.Time
	EndDate   *time.Time
}

// Snapshot holds every collection of one account as fetched together.
type Snapshot struct {
	Income    []Entry
	Expense   []Entry
	Asset     []Entry
	Liability []Entry
	Equity    []Entry
}

// Of returns the collection for the given kind.
func (s *Snapshot) Of(kind Kind) []Entry {
	switch kind {
	case KindIncome:
		return s.Income
	case KindExpense:
		return s.Expense
	case KindAsset:
		return s.Asset
	case KindLiability:
		return s.Liability
	case KindEquity:
		return s.Equity
	}

	return nil
}

// All returns every entry of the snapshot in kind order.
func (s *Snapshot) All() []Entry {
	all := make([]Entry, 0, len(s.Income)+len(s.Expense)+len(s.Asset)+len(s.Liability)+len(s.Equity))
	for _, k := range Kinds() {
		all = append(all, s.Of(k)...)
	}

	return all
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	if _, err := ParseKind(string(filter.Kind)); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEntries(ctx, filter.Kind)
	if err != nil {
		return nil, fmt.Errorf("listing %s entries: %w", filter.Kind, err)
	}

	out := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if filter.StartDate != nil && dayOf(e.OccurredOn).Before(dayOf(*filter.StartDate)) {
			continue
		}

		if filter.EndDate != nil && dayOf(e.OccurredOn).After(dayOf(*filter.EndDate)) {
			continue
		}

		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		return a.OccurredOn.Compare(b.OccurredOn)
	})

	return out, nil
}

// Snapshot fetches all five collections concurrently. Any failing fetch fails
// the whole snapshot so that dashboards never render a partial picture.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)

	fetch := func(kind Kind, dst *[]Entry) {
		g.Go(func() error {
			entries, err := s.repo.ListEntries(ctx, kind)
			if err != nil {
				return fmt.Errorf("fetching %s entries: %w", kind, err)
			}

			*dst = entries

			return nil
		})
	}

	fetch(KindIncome, &snap.Income)
	fetch(KindExpense, &snap.Expense)
	fetch(KindAsset, &snap.Asset)
	fetch(KindLiability, &snap.Liability)
	fetch(KindEquity, &snap.Equity)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snap, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	e, err := s.repo.CreateEntry(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating %s entry: %w", params.Kind, err)
	}

	return e, nil
}

// CreateBatch creates entries one by one. On failure it returns the entries
// created so far together with the error.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Entry, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for i, p := range params {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	created := make([]*Entry, 0, len(params))

	for i, p := range params {
		e, err := s.repo.CreateEntry(ctx, p)
		if err != nil {
			return created, fmt.Errorf("creating entry %d: %w", i+1, err)
		}

		created = append(created, e)
	}

	return created, nil
}

// Update overwrites entry id of params.Kind. The same rules as Create apply.
func (s *Service) Update(ctx context.Context, id string, params CreateParams) (*Entry, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, ErrNotFound
	}

	e, err := s.repo.UpdateEntry(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("updating %s entry %s: %w", params.Kind, id, err)
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}

	if id == "" {
		return ErrNotFound
	}

	return s.repo.DeleteEntry(ctx, kind, id)
}

var (
	errNonPositiveAmount = fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	errMissingDate       = fmt.Errorf("%w: date is required", ErrInvalidEntry)
)

func validate(p CreateParams) error {
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return err
	}

	if !p.Amount.IsPositive() {
		return errNonPositiveAmount
	}

	if p.OccurredOn.IsZero() {
		return errMissingDate
	}

	return nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
