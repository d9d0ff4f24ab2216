package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

// number accepts JSON numbers, numeric strings and null. Anything it cannot
// read becomes zero.
type number struct {
	decimal.Decimal
}

func (n *number) UnmarshalJSON(b []byte) error {
	n.Decimal = decimal.Zero

	s := string(bytes.TrimSpace(b))
	if s == "null" || s == "" {
		return nil
	}

	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}

	if d, err := decimal.NewFromString(s); err == nil {
		n.Decimal = d
	}

	return nil
}

// recordID accepts numeric or string identifiers.
type recordID string

func (i *recordID) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		*i = ""
		return nil
	}

	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}

	*i = recordID(s)

	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// timestamp accepts RFC 3339 timestamps with or without fraction and zone, and
// plain YYYY-MM-DD. Values are held in UTC so the calendar day is the UTC
// date. Unreadable values leave it zero.
type timestamp struct {
	time.Time
}

func (d *timestamp) UnmarshalJSON(b []byte) error {
	d.Time = time.Time{}

	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}

	return nil
}

func firstDate(ds ...timestamp) time.Time {
	for _, d := range ds {
		if !d.IsZero() {
			return d.Time
		}
	}

	return time.Time{}
}

func firstAmount(ns ...number) decimal.Decimal {
	for _, n := range ns {
		if !n.IsZero() {
			return n.Decimal
		}
	}

	return decimal.Zero
}

type incomeRecord struct {
	ID          recordID  `json:"id"`
	Type        string    `json:"type"`
	Amount      number    `json:"amount"`
	IncomeTax   number    `json:"incomeTax"`
	Tax         number    `json:"tax"`
	Description string    `json:"description"`
	IncomeDate  timestamp `json:"incomeDate"`
	CreatedAt   timestamp `json:"createdAt"`
}

func (r incomeRecord) toEntry() entry.Entry {
	return entry.Entry{
		ID:          string(r.ID),
		Kind:        entry.KindIncome,
		Amount:      r.Amount.Decimal,
		OccurredOn:  firstDate(r.IncomeDate, r.CreatedAt),
		Category:    r.Type,
		TaxPercent:  firstAmount(r.IncomeTax, r.Tax),
		Description: r.Description,
	}
}

type spendRecord struct {
	ID           recordID  `json:"id"`
	SpendingType string    `json:"spendingType"`
	Amount       number    `json:"amount"`
	Description  string    `json:"description"`
	SpendDate    timestamp `json:"spendDate"`
	CreatedAt    timestamp `json:"createdAt"`
}

func (r spendRecord) toEntry() entry.Entry {
	return entry.Entry{
		ID:          string(r.ID),
		Kind:        entry.KindExpense,
		Amount:      r.Amount.Decimal,
		OccurredOn:  firstDate(r.SpendDate, r.CreatedAt),
		Category:    r.SpendingType,
		Description: r.Description,
	}
}

type assetRecord struct {
	ID               recordID  `json:"id"`
	AssetName        string    `json:"assetName"`
	Amount           number    `json:"amount"`
	AssetValue       number    `json:"assetValue"`
	AssetCategory    string    `json:"assetCategory"`
	AssetDescription string    `json:"assetDescription"`
	AssetDate        timestamp `json:"assetDate"`
	CreatedAt        timestamp `json:"createdAt"`
}

func (r assetRecord) toEntry() entry.Entry {
	return entry.Entry{
		ID:          string(r.ID),
		Kind:        entry.KindAsset,
		Amount:      firstAmount(r.Amount, r.AssetValue),
		OccurredOn:  firstDate(r.AssetDate, r.CreatedAt),
		Category:    r.AssetCategory,
		Name:        r.AssetName,
		Description: r.AssetDescription,
	}
}

type liabilityRecord struct {
	ID                   recordID  `json:"id"`
	LiabilityName        string    `json:"liabilityName"`
	Amount               number    `json:"amount"`
	LiabilityAmount      number    `json:"liabilityAmount"`
	LiabilityCategory    string    `json:"liabilityCategory"`
	LiabilityDescription string    `json:"liabilityDescription"`
	DueDate              timestamp `json:"dueDate"`
	LiabilityDate        timestamp `json:"liabilityDate"`
	CreatedAt            timestamp `json:"createdAt"`
}

func (r liabilityRecord) toEntry() entry.Entry {
	return entry.Entry{
		ID:          string(r.ID),
		Kind:        entry.KindLiability,
		Amount:      firstAmount(r.Amount, r.LiabilityAmount),
		OccurredOn:  firstDate(r.DueDate, r.LiabilityDate, r.CreatedAt),
		Category:    r.LiabilityCategory,
		Name:        r.LiabilityName,
		Description: r.LiabilityDescription,
	}
}

type equityRecord struct {
	ID          recordID  `json:"id"`
	EquityName  string    `json:"equityName"`
	EquityType  string    `json:"equityType"`
	Amount      number    `json:"amount"`
	Description string    `json:"description"`
	EquityDate  timestamp `json:"equityDate"`
	CreatedAt   timestamp `json:"createdAt"`
}

func (r equityRecord) toEntry() entry.Entry {
	return entry.Entry{
		ID:          string(r.ID),
		Kind:        entry.KindEquity,
		Amount:      r.Amount.Decimal,
		OccurredOn:  firstDate(r.EquityDate, r.CreatedAt),
		Category:    r.EquityType,
		Name:        r.EquityName,
		Description: r.Description,
	}
}

// decodeList reads the "data" member of a list response. The remote API
// wraps some collections in an object keyed by plural name and returns
// others as a bare array.
func decodeList[T any](body []byte, key string) ([]T, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}

		raw = wrapped[key]
		if len(raw) == 0 {
			return nil, nil
		}
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}
