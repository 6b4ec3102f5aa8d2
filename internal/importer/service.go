package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/finman/internal/importer/ledger"
	"github.com/MrJamesThe3rd/finman/internal/importer/statement"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
)

var ErrUnknownFormat = errors.New("unknown import format")

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Suggester interface {
	Suggest(ctx context.Context, note string) (string, error)
}

type Service struct {
	suggester Suggester
}

// NewService creates an import service. suggester may be nil, in which case
// categories are left as parsed.
func NewService(suggester Suggester) *Service {
	return &Service{suggester: suggester}
}

type Request struct {
	Format    Format
	AccountID int
	// Charset names the source encoding; empty means detect it.
	Charset string
}

// Import parses r and returns params ready for transaction.Service.ImportBatch.
// Every row is assigned to the requested account and rows without a category
// get one from the learned rules when a rule matches their note.
func (s *Service) Import(ctx context.Context, req Request, r io.Reader) ([]transaction.CreateParams, error) {
	parser, err := s.parserFor(req)
	if err != nil {
		return nil, err
	}

	params, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	for i := range params {
		params[i].AccountID = req.AccountID

		if strings.TrimSpace(params[i].Category) != "" || s.suggester == nil {
			continue
		}

		suggested, err := s.suggester.Suggest(ctx, params[i].Note)
		if err != nil {
			slog.Warn("category suggestion failed", "note", params[i].Note, "error", err)
			continue
		}

		params[i].Category = suggested
	}

	return params, nil
}

func (s *Service) parserFor(req Request) (Importer, error) {
	switch req.Format {
	case FormatStatement:
		return statement.NewParser(req.Charset), nil
	case FormatLedger:
		return ledger.NewParser(), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, req.Format)
}
