package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ps2kit/ps2kit/internal/ps2"
)

// Dataset reads a persisted ProgSnap2 dataset directory. Tables are loaded
// lazily and cached; construct a new Dataset to pick up on-disk changes.
// Not safe for use while the directory is being mutated.
type Dataset struct {
	dir string

	main       *Table
	metadata   *Table
	codeStates *Table
}

// New returns a Dataset rooted at dir. No I/O happens until a table is
// first requested.
func New(dir string) *Dataset {
	return &Dataset{dir: dir}
}

// Dir returns the dataset root directory.
func (d *Dataset) Dir() string {
	return d.dir
}

func (d *Dataset) path(local string) string {
	return filepath.Join(d.dir, local)
}

// MainTable returns a copy of the main event table. On first access the table
// is loaded and, when the metadata declares consistent event ordering, stably
// sorted: by Order for Global scope, or by the declared grouping columns then
// Order for Restricted scope. A Restricted scope with no grouping columns is
// a ConfigError.
func (d *Dataset) MainTable() (*Table, error) {
	if d.main == nil {
		t, err := ReadTable(d.path(ps2.MainTableFile))
		if err != nil {
			return nil, err
		}
		if err := d.applyOrdering(t); err != nil {
			return nil, err
		}
		d.main = t
	}
	return d.main.Copy(), nil
}

// SetMainTable replaces the cached main table with a copy of t. Later
// operations, including SaveSubset, use the replacement.
func (d *Dataset) SetMainTable(t *Table) {
	d.main = t.Copy()
}

// applyOrdering sorts the freshly loaded main table per the metadata.
func (d *Dataset) applyOrdering(t *Table) error {
	consistent, _, err := d.MetadataProperty(ps2.PropIsEventOrderingConsistent)
	if err != nil {
		return err
	}
	ordered, err := strconv.ParseBool(consistent)
	if err != nil || !ordered {
		// An unparseable flag means no ordering requirement.
		return nil
	}

	scope, _, err := d.MetadataProperty(ps2.PropEventOrderScope)
	if err != nil {
		return err
	}

	switch scope {
	case ps2.OrderScopeGlobal:
		return t.SortBy(ps2.ColOrder)
	case ps2.OrderScopeRestricted:
		declared, _, err := d.MetadataProperty(ps2.PropEventOrderScopeColumns)
		if err != nil {
			return err
		}
		if declared == "" {
			return configErrorf("%s is %s but no %s given",
				ps2.PropEventOrderScope, ps2.OrderScopeRestricted, ps2.PropEventOrderScopeColumns)
		}
		columns := strings.Split(declared, ps2.ScopeColumnSeparator)
		columns = append(columns, ps2.ColOrder)
		// Within each group, events end up ordered.
		return t.SortBy(columns...)
	}
	return nil
}

// CodeStatesTable returns a copy of the code-states table, loading it on
// first access.
func (d *Dataset) CodeStatesTable() (*Table, error) {
	if d.codeStates == nil {
		t, err := ReadTable(d.path(ps2.CodeStatesPath()))
		if err != nil {
			return nil, err
		}
		d.codeStates = t
	}
	return d.codeStates.Copy(), nil
}

func (d *Dataset) metadataTable() (*Table, error) {
	if d.metadata == nil {
		t, err := ReadTable(d.path(ps2.MetadataTableFile))
		if err != nil {
			return nil, err
		}
		d.metadata = t
	}
	return d.metadata, nil
}

// MetadataProperty returns the value of a metadata property. More than one
// row for the same property is a ConfigError. When the property is absent,
// the three ordering-related properties fall back to their documented
// defaults (ordering not consistent, scope None, no scope columns) with
// ok=true; any other absent property returns ok=false.
func (d *Dataset) MetadataProperty(name string) (value string, ok bool, err error) {
	t, err := d.metadataTable()
	if err != nil {
		return "", false, err
	}

	propIdx, found := t.ColumnIndex(ps2.ColProperty)
	valueIdx, foundValue := t.ColumnIndex(ps2.ColValue)
	if !found || !foundValue {
		return "", false, configErrorf("metadata table missing %s/%s columns",
			ps2.ColProperty, ps2.ColValue)
	}

	var matches []string
	for _, row := range t.Rows {
		if row[propIdx] == name {
			matches = append(matches, row[valueIdx])
		}
	}
	if len(matches) > 1 {
		return "", false, configErrorf("multiple values for property %s", name)
	}
	if len(matches) == 1 {
		return matches[0], true, nil
	}

	// Defaults for datasets predating these properties.
	switch name {
	case ps2.PropIsEventOrderingConsistent:
		return "false", true, nil
	case ps2.PropEventOrderScope:
		return ps2.OrderScopeNone, true, nil
	case ps2.PropEventOrderScopeColumns:
		return "", true, nil
	}
	return "", false, nil
}

// ListLinkTables returns the file names of the link tables in this dataset.
func (d *Dataset) ListLinkTables() ([]string, error) {
	entries, err := os.ReadDir(d.path(ps2.LinkTableDir))
	if err != nil {
		return nil, fmt.Errorf("list link tables: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ps2.TableFileExt) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// LoadLinkTable loads a link table by name or file name; the expected file
// extension is added when missing.
func (d *Dataset) LoadLinkTable(name string) (*Table, error) {
	if !strings.HasSuffix(name, ps2.TableFileExt) {
		name += ps2.TableFileExt
	}
	return ReadTable(filepath.Join(d.path(ps2.LinkTableDir), name))
}

// CodeForID returns the code text for a code-state ID. An empty ID is the
// explicit absence value and yields ok=false. Multiple code states with the
// same ID violate the schema and return a ConfigError.
func (d *Dataset) CodeForID(codeStateID string) (code string, ok bool, err error) {
	if codeStateID == "" {
		return "", false, nil
	}
	t, err := d.CodeStatesTable()
	if err != nil {
		return "", false, err
	}

	idIdx, found := t.ColumnIndex(ps2.ColCodeStateID)
	codeIdx, foundCode := t.ColumnIndex(ps2.ColCode)
	if !found || !foundCode {
		return "", false, configErrorf("code states table missing %s/%s columns",
			ps2.ColCodeStateID, ps2.ColCode)
	}

	var matches []string
	for _, row := range t.Rows {
		if row[idIdx] == codeStateID {
			matches = append(matches, row[codeIdx])
		}
	}
	if len(matches) > 1 {
		return "", false, configErrorf("multiple code states match ID %s", codeStateID)
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	return matches[0], true, nil
}

// CodeForEventID resolves an event's CodeStateID and returns its code text.
// ok is false for an unknown event or an event with no code state. Multiple
// events with the same EventID violate the schema and return a ConfigError.
func (d *Dataset) CodeForEventID(eventID string) (code string, ok bool, err error) {
	t, err := d.MainTable()
	if err != nil {
		return "", false, err
	}

	eventIdx, found := t.ColumnIndex(ps2.ColEventID)
	stateIdx, foundState := t.ColumnIndex(ps2.ColCodeStateID)
	if !found || !foundState {
		return "", false, configErrorf("main table missing %s/%s columns",
			ps2.ColEventID, ps2.ColCodeStateID)
	}

	var matches []string
	for _, row := range t.Rows {
		if row[eventIdx] == eventID {
			matches = append(matches, row[stateIdx])
		}
	}
	if len(matches) > 1 {
		return "", false, configErrorf("multiple events match ID %s", eventID)
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	return d.CodeForID(matches[0])
}

// SubjectIDs returns the distinct subject IDs in the main table.
func (d *Dataset) SubjectIDs() ([]string, error) {
	t, err := d.MainTable()
	if err != nil {
		return nil, err
	}
	return t.Distinct(ps2.ColSubjectID)
}

// ProblemIDs returns the distinct problem IDs in the main table.
func (d *Dataset) ProblemIDs() ([]string, error) {
	t, err := d.MainTable()
	if err != nil {
		return nil, err
	}
	return t.Distinct(ps2.ColProblemID)
}

// Trace returns the ordered sequence of code snapshots a subject produced
// while working on a problem: main-table rows matching both IDs, distinct
// CodeStateIDs in filtered order (empty IDs skipped), each mapped to its code
// text.
func (d *Dataset) Trace(subjectID, problemID string) ([]string, error) {
	t, err := d.MainTable()
	if err != nil {
		return nil, err
	}

	subjectIdx, foundSubject := t.ColumnIndex(ps2.ColSubjectID)
	problemIdx, foundProblem := t.ColumnIndex(ps2.ColProblemID)
	if !foundSubject || !foundProblem {
		return nil, configErrorf("main table missing %s/%s columns",
			ps2.ColSubjectID, ps2.ColProblemID)
	}

	rows := t.Filter(func(row []string) bool {
		return row[subjectIdx] == subjectID && row[problemIdx] == problemID
	})

	ids, err := rows.Distinct(ps2.ColCodeStateID)
	if err != nil {
		return nil, err
	}

	var trace []string
	for _, id := range ids {
		code, ok, err := d.CodeForID(id)
		if err != nil {
			return nil, err
		}
		if ok {
			trace = append(trace, code)
		}
	}
	return trace, nil
}

// DropMainTableColumn removes a column from the cached main table. This is
// the one accessor that mutates the cache directly rather than a returned
// copy; later MainTable calls see the dropped column, and SaveSubset writes
// the table without it.
func (d *Dataset) DropMainTableColumn(name string) error {
	if _, err := d.MainTable(); err != nil {
		return err
	}
	return d.main.DropColumn(name)
}
