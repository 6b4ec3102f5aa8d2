package view

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

var errInvalidAmount = errors.New("số tiền không hợp lệ")

// FormatMoney renders a VND amount with thousands separators, e.g. "1,500,000 ₫".
func FormatMoney(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart()) + " ₫"
}

// FormatDate formats a time.Time into YYYY-MM-DD. The zero time is empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}

// ParseDate reads a YYYY-MM-DD date. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.DateOnly, s)
}

// ParseMoney reads an amount typed by the user. Thousands separators
// ("1.500.000", "1,500,000", "1 500 000") are ignored since VND has no cents.
func ParseMoney(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", ".", "", " ", "", "₫", "", "đ", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return decimal.Zero, errInvalidAmount
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, errInvalidAmount
	}

	return d, nil
}

// today is the current date at midnight UTC, the way dates are stored.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func validateMoney(s string) error {
	_, err := ParseMoney(s)
	return err
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("cần nhập ngày (YYYY-MM-DD)")
	}

	_, err := ParseDate(s)

	return err
}

func validateOptionalDate(s string) error {
	_, err := ParseDate(s)
	return err
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("không được để trống")
	}

	return nil
}

// ParseRate reads an interest rate in percent. Empty input is zero and a
// comma is accepted as decimal mark.
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

func validateRate(s string) error {
	_, err := ParseRate(s)
	return err
}
