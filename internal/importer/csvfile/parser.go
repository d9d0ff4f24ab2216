package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/category"
	enc "github.com/MrJamesThe3rd/buku/internal/encoding"
	"github.com/MrJamesThe3rd/buku/internal/entry"
)

var dateLayouts = []string{time.DateOnly, "02/01/2006", "02-01-2006", "2/1/2006"}

// Malay entry type names as used in the app's pickers.
var kindAliases = map[string]entry.Kind{
	"pendapatan":   entry.KindIncome,
	"pengeluaran":  entry.KindExpense,
	"perbelanjaan": entry.KindExpense,
	"spend":        entry.KindExpense,
	"spending":     entry.KindExpense,
	"aset":         entry.KindAsset,
	"liabiliti":    entry.KindLiability,
	"ekuiti":       entry.KindEquity,
}

// Parser reads bookkeeping entries from CSV spreadsheets. It detects the
// header layout (English or Malay), the delimiter and the charset.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]entry.CreateParams, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		slog.Debug("csv import layout detected",
			"profile", profile.Name,
			"delimiter", string(comma),
			"charset", charset,
		)

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no matching CSV layout found: expected Date,Type,Category,Amount or Tarikh,Jenis,Kategori,Jumlah columns")
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows. Rows without a readable date or a non-zero
// amount are skipped as footers; an unknown entry type fails the import.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]entry.CreateParams, error) {
	var (
		dateIdx     = cols.get(p.DateCol)
		typeIdx     = cols.get(p.TypeCol)
		categoryIdx = cols.get(p.CategoryCol)
		amountIdx   = cols.get(p.AmountCol)
		taxIdx      = cols.get(p.TaxCol)
		nameIdx     = cols.get(p.NameCol)
		descIdx     = cols.get(p.DescriptionCol)
	)

	var params []entry.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, err := parseAmount(cellValue(row, amountIdx))
		if err != nil || amount.IsZero() {
			continue
		}

		kind, err := parseKind(cellValue(row, typeIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		tax := decimal.Zero
		if kind == entry.KindIncome {
			if t, err := parseAmount(cellValue(row, taxIdx)); err == nil {
				tax = t
			}
		}

		cat, _ := category.Resolve(kind, cellValue(row, categoryIdx))

		params = append(params, entry.CreateParams{
			Kind:        kind,
			Amount:      amount.Abs(),
			OccurredOn:  date,
			Category:    cat,
			TaxPercent:  tax,
			Name:        cellValue(row, nameIdx),
			Description: cellValue(row, descIdx),
		})
	}

	return params, nil
}

func parseKind(s string) (entry.Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}

	return entry.ParseKind(s)
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
