// Package csvstore persists one record type per CSV file. Every mutation
// reads the whole file and rewrites it, which is fine for a single user's
// ledger and keeps the files editable in a spreadsheet.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	enc "github.com/MrJamesThe3rd/finman/internal/encoding"
)

var ErrNotFound = errors.New("record not found")

// Schema describes how a record type maps onto CSV columns.
type Schema[T any] struct {
	// Columns are written in this order. The first one must hold the id.
	Columns []string
	ID      func(T) int
	WithID  func(T, int) T
	Encode  func(T) []string
	Decode  func(*Row) T
}

// DeleteResult reports what Delete did. Moved maps every id that changed
// during renumbering from its old value to its new one.
type DeleteResult struct {
	Removed bool
	Moved   map[int]int
}

type Table[T any] struct {
	path   string
	schema Schema[T]

	mu sync.Mutex
}

func NewTable[T any](path string, schema Schema[T]) *Table[T] {
	return &Table[T]{path: path, schema: schema}
}

func (t *Table[T]) Path() string {
	return t.path
}

// LoadAll returns every record in file order. A missing file is an empty table.
func (t *Table[T]) LoadAll(ctx context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.read(ctx)
}

func (t *Table[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T

	recs, err := t.LoadAll(ctx)
	if err != nil {
		return zero, err
	}

	for _, rec := range recs {
		if t.schema.ID(rec) == id {
			return rec, nil
		}
	}

	return zero, ErrNotFound
}

// Save replaces the record with the same id, or adds it, and keeps the
// file sorted by id.
func (t *Table[T]) Save(ctx context.Context, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	recs, err := t.read(ctx)
	if err != nil {
		return err
	}

	id := t.schema.ID(rec)
	recs = slices.DeleteFunc(recs, func(r T) bool { return t.schema.ID(r) == id })
	recs = append(recs, rec)

	t.sortByID(recs)

	return t.write(recs)
}

// Insert assigns consecutive ids after the current maximum and writes all
// records in a single rewrite. The stored records are returned.
func (t *Table[T]) Insert(ctx context.Context, recs ...T) ([]T, error) {
	if len(recs) == 0 {
		return nil, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	existing, err := t.read(ctx)
	if err != nil {
		return nil, err
	}

	next := t.maxID(existing) + 1
	created := make([]T, len(recs))

	for i, rec := range recs {
		created[i] = t.schema.WithID(rec, next+i)
	}

	all := append(existing, created...)
	t.sortByID(all)

	if err := t.write(all); err != nil {
		return nil, err
	}

	return created, nil
}

// Delete removes the record and renumbers the remaining ones to 1..N in
// file order. Callers holding ids from this table must apply Moved.
func (t *Table[T]) Delete(ctx context.Context, id int) (DeleteResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	recs, err := t.read(ctx)
	if err != nil {
		return DeleteResult{}, err
	}

	idx := slices.IndexFunc(recs, func(r T) bool { return t.schema.ID(r) == id })
	if idx < 0 {
		return DeleteResult{}, nil
	}

	recs = slices.Delete(recs, idx, idx+1)
	moved := make(map[int]int)

	for i, rec := range recs {
		newID := i + 1
		if oldID := t.schema.ID(rec); oldID != newID {
			moved[oldID] = newID
			recs[i] = t.schema.WithID(rec, newID)
		}
	}

	if err := t.write(recs); err != nil {
		return DeleteResult{}, err
	}

	if len(moved) > 0 {
		slog.Warn("ids renumbered after delete",
			"file", filepath.Base(t.path), "deleted", id, "moved", len(moved))
	}

	return DeleteResult{Removed: true, Moved: moved}, nil
}

// Update runs fn over the current records under the table lock and writes
// the result back when fn reports a change.
func (t *Table[T]) Update(ctx context.Context, fn func([]T) ([]T, bool)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	recs, err := t.read(ctx)
	if err != nil {
		return err
	}

	updated, changed := fn(recs)
	if !changed {
		return nil
	}

	return t.write(updated)
}

func (t *Table[T]) read(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("opening %s: %w", t.path, err)
	}
	defer f.Close()

	recs, err := Decode(f, t.schema)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", t.path, err)
	}

	return recs, nil
}

// Decode parses a CSV stream with a header row into records. Columns are
// matched by name, so their order in the file does not matter.
func Decode[T any](r io.Reader, schema Schema[T]) ([]T, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}

	if idCol := schema.Columns[0]; !hasColumn(cols, idCol) {
		return nil, fmt.Errorf("missing column %q", idCol)
	}

	recs := make([]T, 0, len(rows)-1)

	for i, values := range rows[1:] {
		if isBlank(values) {
			continue
		}

		row := &Row{cols: cols, values: values}

		rec := schema.Decode(row)
		if err := row.Err(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

// write replaces the file atomically through a temp file in the same directory.
func (t *Table[T]) write(recs []T) error {
	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(t.path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)

	if err := w.Write(t.schema.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range recs {
		if err := w.Write(t.schema.Encode(rec)); err != nil {
			tmp.Close()
			return fmt.Errorf("writing record %d: %w", t.schema.ID(rec), err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing %s: %w", t.path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), t.path); err != nil {
		return fmt.Errorf("replacing %s: %w", t.path, err)
	}

	return nil
}

func (t *Table[T]) sortByID(recs []T) {
	slices.SortStableFunc(recs, func(a, b T) int {
		return t.schema.ID(a) - t.schema.ID(b)
	})
}

func (t *Table[T]) maxID(recs []T) int {
	maxID := 0
	for _, rec := range recs {
		maxID = max(maxID, t.schema.ID(rec))
	}

	return maxID
}

func hasColumn(cols map[string]int, name string) bool {
	_, ok := cols[name]
	return ok
}

func isBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
