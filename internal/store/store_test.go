package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ps2kit/ps2kit/internal/ps2"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ps2.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ps2.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ps2.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{
		ps2.MainTable, ps2.CodeStatesTable, ps2.MetadataTable,
		ps2.ProblemTable, ps2.SubjectTable,
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_SeedsMetadataOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ps2.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	count := metadataRowCount(t, s)
	if want := len(ps2.SeedMetadata()); count != want {
		t.Errorf("metadata rows = %d, want %d", count, want)
	}
	s.Close()

	// Reopening must not re-seed.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if again := metadataRowCount(t, s); again != count {
		t.Errorf("metadata rows after reopen = %d, want %d", again, count)
	}
}

func TestOpen_SkipsSeedingWhenMetadataPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ps2.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	// Replace the stamp with a single custom row; reopening must leave it alone.
	ctx := context.Background()
	if err := s.ClearTable(ctx, ps2.MetadataTable); err != nil {
		t.Fatalf("ClearTable() failed: %v", err)
	}
	insert := fmt.Sprintf("INSERT INTO %s (Property, Value) VALUES (?, ?)", ps2.MetadataTable)
	if _, err := s.Exec(ctx, insert, ps2.PropVersion, "custom"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if count := metadataRowCount(t, s); count != 1 {
		t.Errorf("metadata rows = %d, want 1 (seeding must be skipped)", count)
	}

	var value string
	query := fmt.Sprintf("SELECT Value FROM %s WHERE Property = ?", ps2.MetadataTable)
	if err := s.db.QueryRow(query, ps2.PropVersion).Scan(&value); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if value != "custom" {
		t.Errorf("Version = %q, want %q", value, "custom")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestPragma_JournalMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ps2.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
}

func TestPragma_ForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ps2.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
}

func TestQuery_ParameterizedPassthrough(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.LogEvent(ctx, ps2.EventSubmit, ps2.Event{SubjectID: ps2.String("S1")}); err != nil {
		t.Fatalf("LogEvent() failed: %v", err)
	}

	rows, err := s.Query(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE SubjectID = ?", ps2.MainTable), "S1")
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	defer rows.Close()

	if !rows.Next() {
		t.Fatal("expected one result row")
	}
	var count int
	if err := rows.Scan(&count); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func metadataRowCount(t *testing.T, s *Store) int {
	t.Helper()
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", ps2.MetadataTable)
	if err := s.db.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("count metadata rows: %v", err)
	}
	return count
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ps2.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
