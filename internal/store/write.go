package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ps2kit/ps2kit/internal/ps2"
)

// LogEvent appends one event row to the main table. The event's CodeState
// text, when present, is resolved to a deduplicated CodeStateID first; a nil
// CodeState yields a NULL CodeStateID. Any column the event leaves unset is
// stored as NULL. EventID is assigned by the store.
//
// Logging is fire-and-forget: there is no return value beyond the error, and
// a failed append leaves no partial row behind.
func (s *Store) LogEvent(ctx context.Context, eventType string, ev ps2.Event) error {
	var codeStateID sql.NullInt64
	if ev.CodeState != nil {
		id, err := s.GetOrCreateCodeState(ctx, *ev.CodeState)
		if err != nil {
			return fmt.Errorf("log event: %w", err)
		}
		codeStateID = sql.NullInt64{Int64: id, Valid: true}
	}

	values := map[string]any{
		ps2.ColSubjectID:       nullString(ev.SubjectID),
		ps2.ColProblemID:       nullString(ev.ProblemID),
		ps2.ColAssignmentID:    nullString(ev.AssignmentID),
		ps2.ColEventType:       eventType,
		ps2.ColCodeStateID:     codeStateID,
		ps2.ColClientTimestamp: nullString(ev.ClientTimestamp),
		ps2.ColServerTimestamp: nullString(ev.ServerTimestamp),
		ps2.ColScore:           nullFloat(ev.Score),
	}

	// Insert every declared column except the store-assigned EventID.
	var columns []string
	var args []any
	for _, col := range ps2.MainTableColumns {
		if col == ps2.ColEventID {
			continue
		}
		columns = append(columns, "`"+col+"`")
		args = append(args, values[col])
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		ps2.MainTable,
		strings.Join(columns, ","),
		strings.TrimSuffix(strings.Repeat("?,", len(columns)), ","),
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("log event: %w", err)
	}

	return nil
}

// GetOrCreateCodeState returns the snapshot ID for the given code text,
// inserting a new row if no snapshot with identical text exists.
//
// The insert uses ON CONFLICT(Code) DO NOTHING against the unique index, so
// concurrent callers with identical new text converge on a single ID.
func (s *Store) GetOrCreateCodeState(ctx context.Context, code string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("get or create code state: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	insert := fmt.Sprintf(
		"INSERT INTO %s (`%s`) VALUES (?) ON CONFLICT(`%s`) DO NOTHING",
		ps2.CodeStatesTable, ps2.ColCode, ps2.ColCode,
	)
	result, err := tx.ExecContext(ctx, insert, code)
	if err != nil {
		return 0, fmt.Errorf("get or create code state: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get or create code state: rows affected: %w", err)
	}

	var id int64
	if rowsAffected > 0 {
		id, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("get or create code state: last insert id: %w", err)
		}
	} else {
		// Conflict - snapshot already exists, fetch the existing ID
		query := fmt.Sprintf(
			"SELECT `%s` FROM %s WHERE `%s` = ?",
			ps2.ColCodeStateID, ps2.CodeStatesTable, ps2.ColCode,
		)
		if err := tx.QueryRowContext(ctx, query, code).Scan(&id); err != nil {
			return 0, fmt.Errorf("get or create code state: select existing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("get or create code state: commit: %w", err)
	}

	return id, nil
}

// SetStarterCode stores the starter code for a problem, creating the problem
// row if absent and updating the text in place otherwise. Both statements run
// in one transaction.
func (s *Store) SetStarterCode(ctx context.Context, problemID, starterCode string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set starter code: begin tx: %w", err)
	}
	defer tx.Rollback()

	insert := fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (`%s`) VALUES (?)",
		ps2.ProblemTable, ps2.ColProblemID,
	)
	if _, err := tx.ExecContext(ctx, insert, problemID); err != nil {
		return fmt.Errorf("set starter code: insert: %w", err)
	}

	update := fmt.Sprintf(
		"UPDATE %s SET `%s` = ? WHERE `%s` = ?",
		ps2.ProblemTable, ps2.ColStarterCode, ps2.ColProblemID,
	)
	if _, err := tx.ExecContext(ctx, update, starterCode, problemID); err != nil {
		return fmt.Errorf("set starter code: update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set starter code: commit: %w", err)
	}
	return nil
}

// GetOrSetSubjectCondition returns the intervention-group condition for a
// subject. The first call for a subject stores the supplied condition; every
// later call returns the originally stored value and ignores the argument
// (first-write-wins). An empty subjectID returns condition unchanged without
// touching storage.
func (s *Store) GetOrSetSubjectCondition(ctx context.Context, subjectID string, condition int) (int, error) {
	if subjectID == "" {
		return condition, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("subject condition: begin tx: %w", err)
	}
	defer tx.Rollback()

	// Claim the row if absent; the primary key makes this atomic.
	insert := fmt.Sprintf(
		"INSERT INTO %s (`%s`, `%s`) VALUES (?, ?) ON CONFLICT(`%s`) DO NOTHING",
		ps2.SubjectTable, ps2.ColSubjectID, ps2.ColIsInterventionGroup, ps2.ColSubjectID,
	)
	if _, err := tx.ExecContext(ctx, insert, subjectID, condition); err != nil {
		return 0, fmt.Errorf("subject condition: insert: %w", err)
	}

	var stored int
	query := fmt.Sprintf(
		"SELECT `%s` FROM %s WHERE `%s` = ?",
		ps2.ColIsInterventionGroup, ps2.SubjectTable, ps2.ColSubjectID,
	)
	if err := tx.QueryRowContext(ctx, query, subjectID).Scan(&stored); err != nil {
		return 0, fmt.Errorf("subject condition: select: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("subject condition: commit: %w", err)
	}
	return stored, nil
}

// ClearTable deletes all rows from a declared table, preserving its structure.
// The name must be one of the registry tables; anything else is rejected
// because identifiers cannot be bound as parameters.
func (s *Store) ClearTable(ctx context.Context, name string) error {
	if !ps2.IsTable(name) {
		return fmt.Errorf("clear table: unknown table %q", name)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", name)); err != nil {
		return fmt.Errorf("clear table %s: %w", name, err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
