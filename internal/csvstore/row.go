package csvstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row gives decoders access to one CSV record by column name.
// The first conversion failure is kept and reported by Err; later
// lookups return zero values.
type Row struct {
	cols   map[string]int
	values []string
	err    error
}

// String returns the column exactly as stored. Free text keeps its
// surrounding whitespace.
func (r *Row) String(col string) string {
	idx, ok := r.cols[col]
	if !ok || idx >= len(r.values) {
		return ""
	}

	return r.values[idx]
}

// Code returns a trimmed column, for enumerated values such as a type or
// a status.
func (r *Row) Code(col string) string {
	return strings.TrimSpace(r.String(col))
}

// Int parses an integer column. Pandas-style floats such as "3.0" are accepted.
func (r *Row) Int(col string) int {
	s := r.Code(col)
	if s == "" || r.err != nil {
		return 0
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		r.fail(col, s, "integer")
		return 0
	}

	return int(d.IntPart())
}

func (r *Row) Decimal(col string) decimal.Decimal {
	s := r.Code(col)
	if s == "" || r.err != nil {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		r.fail(col, s, "number")
		return decimal.Zero
	}

	return d
}

// Date parses a YYYY-MM-DD column. A trailing time part is ignored.
func (r *Row) Date(col string) time.Time {
	s := r.Code(col)
	if s == "" || r.err != nil {
		return time.Time{}
	}

	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		r.fail(col, s, "date")
		return time.Time{}
	}

	return t
}

func (r *Row) Err() error {
	return r.err
}

func (r *Row) fail(col, value, kind string) {
	r.err = fmt.Errorf("column %s: invalid %s %q", col, kind, value)
}

// FormatDate is the inverse of Row.Date. The zero time encodes as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.DateOnly)
}

func FormatInt(n int) string {
	return strconv.Itoa(n)
}

func FormatDecimal(d decimal.Decimal) string {
	return d.String()
}
