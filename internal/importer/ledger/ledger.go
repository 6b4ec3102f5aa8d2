// Package ledger reads transactions.csv files written by this application,
// so a backup or a copy from another machine can be merged in.
package ledger

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/finman/internal/csvstore"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
	txstore "github.com/MrJamesThe3rd/finman/internal/transaction/store"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one param per income, expense or saving row. Transfers are
// skipped since their category names accounts of the source file.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	txs, err := csvstore.Decode(r, txstore.Schema)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	params := make([]transaction.CreateParams, 0, len(txs))

	for _, t := range txs {
		if t.Type == transaction.TypeTransfer {
			continue
		}

		params = append(params, transaction.CreateParams{
			Date:     t.Date,
			Type:     t.Type,
			Amount:   t.Amount,
			Category: t.Category,
			Note:     t.Note,
		})
	}

	return params, nil
}
