package category

import (
	"github.com/MrJamesThe3rd/buku/internal/entry"
)

// Option is one selectable category of an entry kind.
type Option struct {
	Code    string
	Label   string // Malay
	English string
	aliases []string
}

var catalog = map[entry.Kind][]Option{
	entry.KindIncome: {
		{Code: "daily", Label: "Harian", English: "Daily", aliases: []string{"day", "hari"}},
		{Code: "weekly", Label: "Mingguan", English: "Weekly", aliases: []string{"week", "minggu"}},
		{Code: "monthly", Label: "Bulanan", English: "Monthly", aliases: []string{"month", "bulan"}},
		{Code: "yearly", Label: "Tahunan", English: "Yearly", aliases: []string{"annual", "year", "tahun"}},
	},
	entry.KindExpense: {
		{Code: "salary", Label: "Gaji", English: "Salary", aliases: []string{"gaji", "wage", "payroll"}},
		{Code: "utilities", Label: "Bil Utiliti", English: "Utilities", aliases: []string{"utiliti", "electric", "elektrik", "water", "air", "internet"}},
		{Code: "transport", Label: "Minyak/Pengangkutan", English: "Fuel/Transport", aliases: []string{"minyak", "fuel", "petrol", "pengangkutan", "toll"}},
		{Code: "packaging", Label: "Kos Pembungkusan", English: "Packaging", aliases: []string{"bungkus", "pembungkusan"}},
		{Code: "advertising", Label: "Iklan", English: "Advertising", aliases: []string{"iklan", "ads", "marketing"}},
		{Code: "license", Label: "Yuran Lesen", English: "License Fee", aliases: []string{"lesen", "licence", "permit"}},
		{Code: "rent", Label: "Sewa", English: "Rent", aliases: []string{"sewa", "rental", "lease"}},
		{Code: "others", Label: "Lain-lain", English: "Others", aliases: []string{"lain", "misc", "other"}},
	},
	entry.KindAsset: {
		{Code: "bangunan", Label: "Bangunan", English: "Building", aliases: []string{"building", "premis", "premise"}},
		{Code: "mesin", Label: "Mesin", English: "Machine", aliases: []string{"machine", "machinery"}},
		{Code: "kendaraan", Label: "Kendaraan", English: "Vehicle", aliases: []string{"vehicle", "kenderaan", "car", "kereta", "van", "lorry"}},
		{Code: "peralatan", Label: "Peralatan", English: "Equipment", aliases: []string{"equipment", "alat"}},
		{Code: "investasi_tetap", Label: "Investasi Tetap", English: "Fixed Investment", aliases: []string{"fixed_investment"}},
		{Code: "investasi_lancar", Label: "Investasi Lancar", English: "Current Investment", aliases: []string{"current_investment"}},
		{Code: "inventory", Label: "Inventori", English: "Inventory", aliases: []string{"inventori", "stock", "stok"}},
		{Code: "penghutang", Label: "Penghutang", English: "Receivable", aliases: []string{"receivable", "debtor"}},
		{Code: "deposit", Label: "Deposit", English: "Deposit", aliases: []string{"cagaran"}},
		{Code: "cash_in_hand", Label: "Tunai di Tangan", English: "Cash in Hand", aliases: []string{"tunai", "cash", "petty_cash"}},
		{Code: "cash_in_bank", Label: "Tunai di Bank", English: "Cash in Bank", aliases: []string{"bank"}},
	},
	entry.KindLiability: {
		{Code: "bank_loan", Label: "Pinjaman Bank", English: "Bank Loan", aliases: []string{"pinjaman", "loan", "financing"}},
		{Code: "monthly_loan", Label: "Pinjaman Bulanan", English: "Monthly Loan", aliases: []string{"ansuran", "installment", "instalment"}},
		{Code: "accountable", Label: "Pemiutang", English: "Payable", aliases: []string{"payable", "pemiutang", "creditor", "supplier"}},
		{Code: "repayment", Label: "Bayaran Balik", English: "Repayment", aliases: []string{"bayaran_balik"}},
		{Code: "others", Label: "Lain-lain", English: "Others", aliases: []string{"lain", "other"}},
	},
	entry.KindEquity: {
		{Code: "initial", Label: "Modal Awal / Modal Disetor", English: "Initial Capital", aliases: []string{"modal_awal", "capital", "modal"}},
		{Code: "retained", Label: "Laba Ditahan", English: "Retained Earnings", aliases: []string{"laba", "retained_earnings"}},
		{Code: "withdrawal", Label: "Prive", English: "Owner Withdrawal", aliases: []string{"prive", "drawing", "pengeluaran_pemilik"}},
		{Code: "additional", Label: "Tambahan Modal Disetor", English: "Additional Capital", aliases: []string{"tambahan", "top_up"}},
	},
}
