package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ps2kit/ps2kit/internal/ps2"
)

// MainTableFilter transforms the main table during SaveSubset. Implementations
// receive a private copy and return the table to persist (typically a filtered
// subset of its rows).
type MainTableFilter func(*Table) *Table

// SaveSubset writes a filtered copy of this dataset under target: the
// transformed main table, only the code snapshots its rows still reference,
// the metadata verbatim, and - when copyLinkTables is set - each link table
// reduced to rows whose ID-column tuple appears among the surviving main
// rows. A nil filter copies the main table unchanged.
func (d *Dataset) SaveSubset(target string, filter MainTableFilter, copyLinkTables bool) error {
	if err := os.MkdirAll(filepath.Join(target, ps2.CodeStatesDir), 0o755); err != nil {
		return fmt.Errorf("save subset: %w", err)
	}

	main, err := d.MainTable()
	if err != nil {
		return fmt.Errorf("save subset: %w", err)
	}
	if filter != nil {
		main = filter(main)
	}
	if err := WriteTable(filepath.Join(target, ps2.MainTableFile), main); err != nil {
		return fmt.Errorf("save subset: %w", err)
	}

	if err := d.writeReferencedCodeStates(target, main); err != nil {
		return fmt.Errorf("save subset: %w", err)
	}

	metadata, err := d.metadataTable()
	if err != nil {
		return fmt.Errorf("save subset: %w", err)
	}
	if err := WriteTable(filepath.Join(target, ps2.MetadataTableFile), metadata); err != nil {
		return fmt.Errorf("save subset: %w", err)
	}

	if !copyLinkTables {
		return nil
	}
	if err := d.writeFilteredLinkTables(target, main); err != nil {
		return fmt.Errorf("save subset: %w", err)
	}
	return nil
}

// writeReferencedCodeStates writes the code-states table restricted to the
// snapshot IDs the surviving main rows reference: no orphans, no omissions.
func (d *Dataset) writeReferencedCodeStates(target string, main *Table) error {
	referenced, err := main.Distinct(ps2.ColCodeStateID)
	if err != nil {
		return err
	}
	keep := make(map[string]bool, len(referenced))
	for _, id := range referenced {
		keep[id] = true
	}

	codeStates, err := d.CodeStatesTable()
	if err != nil {
		return err
	}
	idIdx, ok := codeStates.ColumnIndex(ps2.ColCodeStateID)
	if !ok {
		return configErrorf("code states table missing %s column", ps2.ColCodeStateID)
	}

	filtered := codeStates.Filter(func(row []string) bool {
		return keep[row[idIdx]]
	})
	return WriteTable(filepath.Join(target, ps2.CodeStatesPath()), filtered)
}

// writeFilteredLinkTables applies join-key filtering: a link row survives when
// its tuple of shared ID columns appears among the main table's tuples for
// those same columns. This is tuple membership, not a general join.
func (d *Dataset) writeFilteredLinkTables(target string, main *Table) error {
	if err := os.MkdirAll(filepath.Join(target, ps2.LinkTableDir), 0o755); err != nil {
		return err
	}

	names, err := d.ListLinkTables()
	if err != nil {
		return err
	}

	for _, name := range names {
		link, err := d.LoadLinkTable(name)
		if err != nil {
			return err
		}

		// ID columns shared between this link table and the main table, in
		// the link table's declared order.
		var keyCols []string
		for _, col := range link.Columns {
			if !strings.HasSuffix(col, "ID") {
				continue
			}
			if _, ok := main.ColumnIndex(col); ok {
				keyCols = append(keyCols, col)
			}
		}

		filtered := link
		if len(keyCols) > 0 {
			mainKeys, err := keyTuples(main, keyCols)
			if err != nil {
				return err
			}
			linkIdx := make([]int, len(keyCols))
			for i, col := range keyCols {
				idx, _ := link.ColumnIndex(col)
				linkIdx[i] = idx
			}
			filtered = link.Filter(func(row []string) bool {
				return mainKeys[tupleKey(row, linkIdx)]
			})
		}

		if err := WriteTable(filepath.Join(target, ps2.LinkTableDir, name), filtered); err != nil {
			return err
		}
	}
	return nil
}

// keyTuples collects the distinct tuples of the named columns.
func keyTuples(t *Table, columns []string) (map[string]bool, error) {
	indexes := make([]int, len(columns))
	for i, col := range columns {
		idx, ok := t.ColumnIndex(col)
		if !ok {
			return nil, fmt.Errorf("key tuples: no column %q", col)
		}
		indexes[i] = idx
	}

	tuples := make(map[string]bool)
	for _, row := range t.Rows {
		tuples[tupleKey(row, indexes)] = true
	}
	return tuples, nil
}

// tupleKey joins the selected cells with an unprintable separator so that
// multi-column tuples cannot collide with single-column values.
func tupleKey(row []string, indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = row[idx]
	}
	return strings.Join(parts, "\x1f")
}
