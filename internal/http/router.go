package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finman/internal/http/account"
	"github.com/MrJamesThe3rd/finman/internal/http/export"
	"github.com/MrJamesThe3rd/finman/internal/http/importcsv"
	"github.com/MrJamesThe3rd/finman/internal/http/loan"
	"github.com/MrJamesThe3rd/finman/internal/http/matching"
	"github.com/MrJamesThe3rd/finman/internal/http/report"
	"github.com/MrJamesThe3rd/finman/internal/http/saving"
	"github.com/MrJamesThe3rd/finman/internal/http/transaction"
)

type Handlers struct {
	Accounts     *account.Handler
	Transactions *transaction.Handler
	Loans        *loan.Handler
	Savings      *saving.Handler
	Reports      *report.Handler
	Export       *export.Handler
	Import       *importcsv.Handler
	Matching     *matching.Handler
}

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	json := middleware.AllowContentType("application/json")

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Use(json)
			h.Accounts.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(json)
			h.Transactions.Routes(r)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Use(json)
			h.Loans.Routes(r)
		})

		r.Route("/savings", func(r chi.Router) {
			r.Use(json)
			h.Savings.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(json)
			h.Export.Routes(r)
		})

		r.Route("/import", h.Import.Routes)

		r.Route("/matching", func(r chi.Router) {
			r.Use(json)
			h.Matching.Routes(r)
		})
	})

	return router
}

// requestID tags each request with a uuid, keeping one sent by the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(middleware.RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
