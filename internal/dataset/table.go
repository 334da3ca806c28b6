package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Table is an in-memory tabular structure: a header row of column names and
// zero or more data rows of string cells. Cells are uninterpreted text; an
// empty cell stands for a null value.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	c := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// ColumnIndex returns the position of a column, or false if absent.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// DropColumn removes a column and its cells in place.
func (t *Table) DropColumn(name string) error {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return fmt.Errorf("drop column: no column %q", name)
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for i, row := range t.Rows {
		t.Rows[i] = append(row[:idx], row[idx+1:]...)
	}
	return nil
}

// Distinct returns the unique values of a column, first occurrence order
// preserved.
func (t *Table) Distinct(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("distinct: no column %q", name)
	}
	seen := make(map[string]bool)
	var values []string
	for _, row := range t.Rows {
		v := row[idx]
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values, nil
}

// Filter returns a new table holding only the rows for which keep returns
// true. The column set is shared semantics-wise but copied.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	f := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, row := range t.Rows {
		if keep(row) {
			f.Rows = append(f.Rows, append([]string(nil), row...))
		}
	}
	return f
}

// SortBy stably sorts rows by the named columns, most significant first.
// Cells that both parse as numbers compare numerically, otherwise
// lexicographically. Errors if any named column is absent.
func (t *Table) SortBy(columns ...string) error {
	indexes := make([]int, len(columns))
	for i, name := range columns {
		idx, ok := t.ColumnIndex(name)
		if !ok {
			return fmt.Errorf("sort: no column %q", name)
		}
		indexes[i] = idx
	}

	sort.SliceStable(t.Rows, func(a, b int) bool {
		for _, idx := range indexes {
			if cmp := compareCells(t.Rows[a][idx], t.Rows[b][idx]); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return nil
}

// compareCells orders two cells, numerically when both sides parse as floats.
func compareCells(a, b string) int {
	if a == b {
		return 0
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// ReadTable loads a CSV file with a header row into a Table.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read table %s: missing header row", path)
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// WriteTable writes a Table to a CSV file, header row first.
func WriteTable(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write table %s: header: %w", path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		f.Close()
		return fmt.Errorf("write table %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write table %s: flush: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("write table %s: close: %w", path, err)
	}
	return nil
}
