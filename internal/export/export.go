// Package export materializes a SQLite event store as a ProgSnap2 dataset
// directory readable by internal/dataset: MainTable.csv, DatasetMetadata.csv,
// CodeStates/CodeStates.csv, and the link tables under LinkTables/.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/ps2kit/ps2kit/internal/dataset"
	"github.com/ps2kit/ps2kit/internal/ps2"
	"github.com/ps2kit/ps2kit/internal/store"
)

// Export writes the store's tables as CSV under dir. The main table comes out
// in EventID order with a synthesized Order column appended, so the Global
// ordering the store's metadata declares holds for the exported file.
//
// The dataset is assembled in a staging directory next to dir and renamed
// into place, so a failed export never leaves a partial dataset at dir.
// Fails if dir already exists.
func Export(ctx context.Context, s *store.Store, dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("export: %s already exists", dir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("export: %w", err)
	}

	staging := fmt.Sprintf("%s.tmp-%s", filepath.Clean(dir), uuid.NewString())
	if err := os.MkdirAll(filepath.Join(staging, ps2.CodeStatesDir), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer os.RemoveAll(staging) // No-op after a successful rename

	if err := os.MkdirAll(filepath.Join(staging, ps2.LinkTableDir), 0o755); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	main, err := readTable(ctx, s, ps2.MainTable)
	if err != nil {
		return err
	}
	appendOrderColumn(main)
	if err := dataset.WriteTable(filepath.Join(staging, ps2.MainTableFile), main); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	files := map[string]string{
		ps2.MetadataTableFile:                             ps2.MetadataTable,
		ps2.CodeStatesPath():                              ps2.CodeStatesTable,
		filepath.Join(ps2.LinkTableDir, ps2.ProblemTable+ps2.TableFileExt): ps2.ProblemTable,
		filepath.Join(ps2.LinkTableDir, ps2.SubjectTable+ps2.TableFileExt): ps2.SubjectTable,
	}
	for file, table := range files {
		t, err := readTable(ctx, s, table)
		if err != nil {
			return err
		}
		if err := dataset.WriteTable(filepath.Join(staging, file), t); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	if err := os.Rename(staging, dir); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func readTable(ctx context.Context, s *store.Store, name string) (*dataset.Table, error) {
	columns, rows, err := s.ReadTable(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return &dataset.Table{Columns: columns, Rows: rows}, nil
}

// appendOrderColumn adds an Order column numbered from 1 in row order. Rows
// arrive in EventID order, so Order mirrors the append sequence.
func appendOrderColumn(t *dataset.Table) {
	t.Columns = append(t.Columns, ps2.ColOrder)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], strconv.Itoa(i+1))
	}
}
