package csvfile

// Profile describes the header names of one supported CSV layout. Headers
// are matched case-insensitively after trimming.
type Profile struct {
	Name        string
	DateCol     string
	TypeCol     string
	CategoryCol string
	AmountCol   string
	// Optional columns.
	TaxCol         string
	NameCol        string
	DescriptionCol string
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.TypeCol, p.CategoryCol, p.AmountCol}
}

// profiles is the ordered list of layouts tried during detection.
var profiles = []Profile{
	{
		Name:           "english",
		DateCol:        "date",
		TypeCol:        "type",
		CategoryCol:    "category",
		AmountCol:      "amount",
		TaxCol:         "tax",
		NameCol:        "name",
		DescriptionCol: "description",
	},
	{
		Name:           "malay",
		DateCol:        "tarikh",
		TypeCol:        "jenis",
		CategoryCol:    "kategori",
		AmountCol:      "jumlah",
		TaxCol:         "cukai",
		NameCol:        "nama",
		DescriptionCol: "keterangan",
	},
}
