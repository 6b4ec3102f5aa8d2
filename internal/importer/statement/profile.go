package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Số tiền" with value "-50.000").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns (e.g. "Ghi nợ"/"Ghi có").
	amountSplit
)

// Profile describes the column layout of a bank statement export.
// Adding a new format is just adding a new Profile to the profiles slice.
// Column names are compared case-insensitively.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of statement formats to try during auto-detection.
// More specific profiles should come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "ngân hàng",
		DateCol:    "Ngày giao dịch",
		DescCol:    "Mô tả",
		AmountMode: amountSplit,
		DebitCol:   "Số tiền ghi nợ",
		CreditCol:  "Số tiền ghi có",
	},
	{
		Name:       "ghi nợ/ghi có",
		DateCol:    "Ngày",
		DescCol:    "Nội dung",
		AmountMode: amountSplit,
		DebitCol:   "Ghi nợ",
		CreditCol:  "Ghi có",
	},
	{
		Name:       "ví điện tử",
		DateCol:    "Thời gian",
		DescCol:    "Nội dung",
		AmountMode: amountSingle,
		AmountCol:  "Số tiền",
	},
	{
		Name:       "sao kê",
		DateCol:    "Ngày giao dịch",
		DescCol:    "Nội dung",
		AmountMode: amountSingle,
		AmountCol:  "Số tiền",
	},
	{
		Name:       "debit/credit",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: amountSplit,
		DebitCol:   "Debit",
		CreditCol:  "Credit",
	},
	{
		Name:       "english",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: amountSingle,
		AmountCol:  "Amount",
	},
}
