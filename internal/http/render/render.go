// Package render holds the JSON helpers shared by the API handlers.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finman/internal/account"
	"github.com/MrJamesThe3rd/finman/internal/loan"
	"github.com/MrJamesThe3rd/finman/internal/matching"
	"github.com/MrJamesThe3rd/finman/internal/saving"
	"github.com/MrJamesThe3rd/finman/internal/transaction"
	"github.com/MrJamesThe3rd/finman/internal/validate"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status that matches its kind.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, status, errorResponse{Error: "internal error"})

		return
	}

	JSON(w, status, errorResponse{Error: err.Error()})
}

func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusNotFound, errorResponse{Error: msg})
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrNotFound),
		errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, saving.ErrNotFound),
		errors.Is(err, matching.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrDuplicate):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Decode reads a JSON body into v and reports a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return false
	}

	return true
}

// ID parses the {id} URL parameter and reports a 400 on failure.
func ID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		BadRequest(w, "invalid id")
		return 0, false
	}

	return id, true
}

// Date parses a YYYY-MM-DD string. Empty input yields the zero time.
func Date(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.DateOnly, s)
}

// FormatDate renders t as YYYY-MM-DD, or empty for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}
