package finance

import (
	"strings"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

// Direction is the effect of an entry on the liquid cash position.
type Direction int

const (
	Unclassified Direction = iota
	CashIn
	CashOut
)

func (d Direction) String() string {
	switch d {
	case CashIn:
		return "cash_in"
	case CashOut:
		return "cash_out"
	default:
		return "unclassified"
	}
}

// Bucket names the source of a cash movement.
type Bucket string

const (
	BucketIncome       Bucket = "income"
	BucketSpending     Bucket = "spending"
	BucketEquityIn     Bucket = "equity_in"
	BucketEquityOut    Bucket = "equity_out"
	BucketAssetIn      Bucket = "asset_in"
	BucketAssetOut     Bucket = "asset_out"
	BucketBankLoan     Bucket = "bank_loan"
	BucketLiabilityOut Bucket = "liability_out"
	BucketUnclassified Bucket = "unclassified"
)

// CashBuckets lists every classified bucket, inflows first.
func CashBuckets() []Bucket {
	return []Bucket{
		BucketIncome, BucketEquityIn, BucketAssetIn, BucketBankLoan,
		BucketSpending, BucketEquityOut, BucketAssetOut, BucketLiabilityOut,
	}
}

// Direction is the cash direction every entry of b shares.
func (b Bucket) Direction() Direction {
	switch b {
	case BucketIncome, BucketEquityIn, BucketAssetIn, BucketBankLoan:
		return CashIn
	case BucketSpending, BucketEquityOut, BucketAssetOut, BucketLiabilityOut:
		return CashOut
	}

	return Unclassified
}

type Classification struct {
	Direction Direction
	Bucket    Bucket
}

var (
	unclassified = Classification{Direction: Unclassified, Bucket: BucketUnclassified}

	// Buying fixed or invested assets consumes cash.
	assetOutflow = map[string]bool{
		"bangunan":         true,
		"mesin":            true,
		"kendaraan":        true,
		"peralatan":        true,
		"investasi_tetap":  true,
		"investasi_lancar": true,
	}

	// Realizing liquid or receivable assets brings cash in.
	assetInflow = map[string]bool{
		"inventory":    true,
		"penghutang":   true,
		"deposit":      true,
		"cash_in_hand": true,
		"cash_in_bank": true,
	}
)

// Classify maps an entry to its cash direction and source bucket. Categories
// are compared after trimming and lower-casing. It never fails: anything it
// cannot place is Unclassified.
func Classify(e entry.Entry) Classification {
	cat := strings.ToLower(strings.TrimSpace(e.Category))

	switch e.Kind {
	case entry.KindIncome:
		return Classification{Direction: CashIn, Bucket: BucketIncome}
	case entry.KindExpense:
		return Classification{Direction: CashOut, Bucket: BucketSpending}
	case entry.KindEquity:
		switch cat {
		case "initial", "additional":
			return Classification{Direction: CashIn, Bucket: BucketEquityIn}
		case "withdrawal":
			return Classification{Direction: CashOut, Bucket: BucketEquityOut}
		}
	case entry.KindAsset:
		if assetOutflow[cat] {
			return Classification{Direction: CashOut, Bucket: BucketAssetOut}
		}

		if assetInflow[cat] {
			return Classification{Direction: CashIn, Bucket: BucketAssetIn}
		}
	case entry.KindLiability:
		if cat == "bank_loan" {
			return Classification{Direction: CashIn, Bucket: BucketBankLoan}
		}

		return Classification{Direction: CashOut, Bucket: BucketLiabilityOut}
	}

	return unclassified
}
