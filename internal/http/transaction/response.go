package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finman/internal/http/render"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

type transactionResponse struct {
	ID        int              `json:"id"`
	Date      string           `json:"date"`
	Type      transaction.Type `json:"type"`
	Amount    decimal.Decimal  `json:"amount"`
	Category  string           `json:"category"`
	AccountID int              `json:"account_id"`
	Note      string           `json:"note,omitempty"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:        tx.ID,
		Date:      render.FormatDate(tx.Date),
		Type:      tx.Type,
		Amount:    tx.Amount,
		Category:  tx.Category,
		AccountID: tx.AccountID,
		Note:      tx.Note,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
