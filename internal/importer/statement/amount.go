package statement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

// parseVNDAmount parses an amount as printed on Vietnamese statements.
// Examples: "1.234.567" -> 1234567, "-50,000" -> -50000, "(20.000)" -> -20000,
// "1,234,567.00 VND" -> 1234567, "+300.000đ" -> 300000.
//
// Both '.' and ',' are used as thousands separators. When both appear the
// last one is the decimal mark; when only one appears it is a thousands
// separator if every group after it has three digits.
func parseVNDAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	for _, suffix := range []string{"VND", "vnd", "VNĐ", "đ", "₫"} {
		clean = strings.TrimSuffix(strings.TrimSpace(clean), suffix)
	}

	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")

	neg := false

	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		neg = true
		clean = clean[1 : len(clean)-1]
	}

	clean = strings.TrimPrefix(clean, "+")

	if clean == "" {
		return decimal.Zero, errEmptyAmount
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			clean = strings.ReplaceAll(clean, ",", "")
		} else {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		}
	case lastDot >= 0:
		clean = resolveSeparator(clean, ".")
	case lastComma >= 0:
		clean = resolveSeparator(clean, ",")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if neg {
		d = d.Neg()
	}

	return d, nil
}

func resolveSeparator(s, sep string) string {
	parts := strings.Split(s, sep)

	grouped := len(parts) > 2
	if !grouped {
		grouped = len(parts[1]) == 3
	}

	for _, p := range parts[1:] {
		if len(p) != 3 {
			grouped = false
		}
	}

	if grouped {
		return strings.Join(parts, "")
	}

	return strings.Join(parts, ".")
}

var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006 15:04:05",
	"2006-01-02 15:04:05",
	"2/1/2006",
}

// parseStatementDate accepts the day-first layouts used by local banks and
// ISO dates. The time of day is dropped.
func parseStatementDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}
