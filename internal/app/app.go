// Package app wires the stores and services used by both binaries.
package app

import (
	"github.com/MrJamesThe3rd/finman/internal/account"
	accountStore "github.com/MrJamesThe3rd/finman/internal/account/store"
	"github.com/MrJamesThe3rd/finman/internal/config"
	"github.com/MrJamesThe3rd/finman/internal/export"
	"github.com/MrJamesThe3rd/finman/internal/importer"
	"github.com/MrJamesThe3rd/finman/internal/loan"
	loanStore "github.com/MrJamesThe3rd/finman/internal/loan/store"
	"github.com/MrJamesThe3rd/finman/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finman/internal/matching/store"
	"github.com/MrJamesThe3rd/finman/internal/report"
	"github.com/MrJamesThe3rd/finman/internal/saving"
	savingStore "github.com/MrJamesThe3rd/finman/internal/saving/store"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finman/internal/transaction/store"
)

type App struct {
	Accounts     *account.Service
	Transactions *transaction.Service
	Loans        *loan.Service
	Savings      *saving.Service
	Reports      *report.Service
	Export       *export.Service
	Matching     *matching.Service
	Importer     *importer.Service
}

// New opens the CSV tables under the configured data directory. Files are
// created on first write.
func New(cfg *config.Config) *App {
	var (
		transactionService = transaction.NewService(txStore.New(cfg.DataPath(cfg.Data.TransactionsFile)))
		loanService        = loan.NewService(loanStore.New(cfg.DataPath(cfg.Data.LoansFile)), nil)
		savingService      = saving.NewService(savingStore.New(cfg.DataPath(cfg.Data.SavingsFile)), transactionService)
		matchingService    = matching.NewService(matchingStore.New(cfg.DataPath(cfg.Data.RulesFile)))
		accountService     = account.NewService(
			accountStore.New(cfg.DataPath(cfg.Data.AccountsFile)),
			transactionService, savingService, loanService,
		)
	)

	reportService := report.NewService(accountService, transactionService, loanService, savingService)

	return &App{
		Accounts:     accountService,
		Transactions: transactionService,
		Loans:        loanService,
		Savings:      savingService,
		Reports:      reportService,
		Export:       export.NewService(reportService),
		Matching:     matchingService,
		Importer:     importer.NewService(matchingService),
	}
}
