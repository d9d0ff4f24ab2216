package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("entry not found")
	ErrInvalidKind  = errors.New("invalid entry kind")
	ErrInvalidEntry = errors.New("invalid entry")
)

// Kind is the bookkeeping class of an entry.
type Kind string

const (
	KindIncome    Kind = "income"
	KindExpense   Kind = "expense"
	KindAsset     Kind = "asset"
	KindLiability Kind = "liability"
	KindEquity    Kind = "equity"
)

// Kinds returns every entry kind in display order.
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpense, KindAsset, KindLiability, KindEquity}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindIncome, KindExpense, KindAsset, KindLiability, KindEquity:
		return k, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Entry is a single financial record normalized from whatever shape the
// remote API returned. Amount is in the reference currency.
type Entry struct {
	ID          string
	Kind        Kind
	Amount      decimal.Decimal
	OccurredOn  time.Time
	Category    string
	TaxPercent  decimal.Decimal // zero when the record carries no tax
	Name        string
	Description string
}
