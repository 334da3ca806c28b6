package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_CopyIsIndependent(t *testing.T) {
	original := &Table{
		Columns: []string{"A", "B"},
		Rows:    [][]string{{"1", "x"}, {"2", "y"}},
	}

	c := original.Copy()
	c.Columns[0] = "Z"
	c.Rows[0][0] = "changed"

	assert.Equal(t, "A", original.Columns[0])
	assert.Equal(t, "1", original.Rows[0][0])
}

func TestTable_DropColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"A", "B", "C"},
		Rows:    [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
	}

	require.NoError(t, table.DropColumn("B"))

	assert.Equal(t, []string{"A", "C"}, table.Columns)
	assert.Equal(t, [][]string{{"1", "3"}, {"4", "6"}}, table.Rows)
}

func TestTable_DropColumn_Unknown(t *testing.T) {
	table := &Table{Columns: []string{"A"}}
	assert.Error(t, table.DropColumn("B"))
}

func TestTable_Distinct_PreservesFirstSeenOrder(t *testing.T) {
	table := &Table{
		Columns: []string{"ID"},
		Rows:    [][]string{{"5"}, {"5"}, {"7"}, {"5"}},
	}

	values, err := table.Distinct("ID")
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "7"}, values)
}

func TestTable_SortBy_Numeric(t *testing.T) {
	table := &Table{
		Columns: []string{"Order"},
		Rows:    [][]string{{"10"}, {"2"}, {"1"}},
	}

	require.NoError(t, table.SortBy("Order"))

	// Numeric, not lexical: 1 < 2 < 10.
	assert.Equal(t, [][]string{{"1"}, {"2"}, {"10"}}, table.Rows)
}

func TestTable_SortBy_Stable(t *testing.T) {
	table := &Table{
		Columns: []string{"Key", "Tag"},
		Rows:    [][]string{{"1", "first"}, {"2", "other"}, {"1", "second"}},
	}

	require.NoError(t, table.SortBy("Key"))

	assert.Equal(t, [][]string{
		{"1", "first"}, {"1", "second"}, {"2", "other"},
	}, table.Rows)
}

func TestTable_SortBy_MultiColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"SubjectID", "Order"},
		Rows:    [][]string{{"B", "2"}, {"A", "2"}, {"A", "1"}},
	}

	require.NoError(t, table.SortBy("SubjectID", "Order"))

	assert.Equal(t, [][]string{
		{"A", "1"}, {"A", "2"}, {"B", "2"},
	}, table.Rows)
}

func TestTable_SortBy_UnknownColumn(t *testing.T) {
	table := &Table{Columns: []string{"A"}}
	assert.Error(t, table.SortBy("Order"))
}

func TestReadWriteTable_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	table := &Table{
		Columns: []string{"ID", "Code"},
		Rows: [][]string{
			{"1", "print(1)"},
			{"2", "line one\nline two"},
			{"3", `says "hi", twice`},
		},
	}

	require.NoError(t, WriteTable(path, table))

	loaded, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, table.Columns, loaded.Columns)
	assert.Equal(t, table.Rows, loaded.Rows)
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
