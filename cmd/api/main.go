package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finman/internal/app"
	"github.com/MrJamesThe3rd/finman/internal/config"
	finmanHttp "github.com/MrJamesThe3rd/finman/internal/http"
	accountHandler "github.com/MrJamesThe3rd/finman/internal/http/account"
	exportHandler "github.com/MrJamesThe3rd/finman/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/finman/internal/http/importcsv"
	loanHandler "github.com/MrJamesThe3rd/finman/internal/http/loan"
	matchingHandler "github.com/MrJamesThe3rd/finman/internal/http/matching"
	reportHandler "github.com/MrJamesThe3rd/finman/internal/http/report"
	savingHandler "github.com/MrJamesThe3rd/finman/internal/http/saving"
	txHandler "github.com/MrJamesThe3rd/finman/internal/http/transaction"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.Level})))

	a := app.New(cfg)

	router := finmanHttp.New(finmanHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
	}, finmanHttp.Handlers{
		Accounts:     accountHandler.NewHandler(a.Accounts),
		Transactions: txHandler.NewHandler(a.Transactions, a.Accounts),
		Loans:        loanHandler.NewHandler(a.Loans),
		Savings:      savingHandler.NewHandler(a.Savings),
		Reports:      reportHandler.NewHandler(a.Reports),
		Export:       exportHandler.NewHandler(a.Export, cfg.Export.Dir),
		Import:       importHandler.NewHandler(a.Importer, a.Transactions, a.Accounts),
		Matching:     matchingHandler.NewHandler(a.Matching),
	})

	addr := cfg.Addr()
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr, "data_dir", cfg.Data.Dir)

	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
