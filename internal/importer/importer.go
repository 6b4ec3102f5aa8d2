package importer

import (
	"io"

	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

type Format string

const (
	// FormatStatement is a CSV export from a bank or e-wallet.
	FormatStatement Format = "statement"
	// FormatLedger is a transactions.csv written by this application.
	FormatLedger Format = "ledger"
)

func Formats() []Format {
	return []Format{FormatStatement, FormatLedger}
}

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
