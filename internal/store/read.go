package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ps2kit/ps2kit/internal/ps2"
)

// GetStarterCode returns the starter code stored for a problem. ok is false
// when the problem is unknown or has no starter code; that is a valid outcome,
// not an error.
func (s *Store) GetStarterCode(ctx context.Context, problemID string) (code string, ok bool, err error) {
	query := fmt.Sprintf(
		"SELECT `%s` FROM %s WHERE `%s` = ?",
		ps2.ColStarterCode, ps2.ProblemTable, ps2.ColProblemID,
	)

	var stored sql.NullString
	err = s.db.QueryRowContext(ctx, query, problemID).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get starter code: %w", err)
	}
	if !stored.Valid {
		return "", false, nil
	}
	return stored.String, true, nil
}

// ReadTable returns the declared columns and all rows of a registry table,
// with NULL cells rendered as empty strings. MainTable rows come back in
// EventID order and CodeStates rows in CodeStateID order; link tables are
// ordered by their key column. Used by the dataset exporter.
func (s *Store) ReadTable(ctx context.Context, name string) (columns []string, rows [][]string, err error) {
	columns, ok := ps2.TableColumns[name]
	if !ok {
		return nil, nil, fmt.Errorf("read table: unknown table %q", name)
	}

	var selectCols string
	for i, col := range columns {
		if i > 0 {
			selectCols += ","
		}
		selectCols += "`" + col + "`"
	}

	query := fmt.Sprintf("SELECT %s FROM %s", selectCols, name)
	switch name {
	case ps2.MainTable:
		query += fmt.Sprintf(" ORDER BY `%s` ASC", ps2.ColEventID)
	case ps2.CodeStatesTable:
		query += fmt.Sprintf(" ORDER BY `%s` ASC", ps2.ColCodeStateID)
	case ps2.ProblemTable:
		query += fmt.Sprintf(" ORDER BY `%s` ASC", ps2.ColProblemID)
	case ps2.SubjectTable:
		query += fmt.Sprintf(" ORDER BY `%s` ASC", ps2.ColSubjectID)
	}

	result, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("read table %s: %w", name, err)
	}
	defer result.Close()

	scan := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range scan {
		dest[i] = &scan[i]
	}

	for result.Next() {
		if err := result.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("read table %s: scan: %w", name, err)
		}
		row := make([]string, len(columns))
		for i, cell := range scan {
			if cell.Valid {
				row[i] = cell.String
			}
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, nil, fmt.Errorf("read table %s: iterate: %w", name, err)
	}

	return columns, rows, nil
}
