package dataset

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps2kit/ps2kit/internal/ps2"
)

func scoreAbove(threshold float64) MainTableFilter {
	return func(t *Table) *Table {
		idx, ok := t.ColumnIndex(ps2.ColScore)
		if !ok {
			return t
		}
		return t.Filter(func(row []string) bool {
			score, err := strconv.ParseFloat(row[idx], 64)
			return err == nil && score > threshold
		})
	}
}

func subsetSource(t *testing.T) *Dataset {
	t.Helper()
	dir := writeDataset(t, map[string]string{
		ps2.MetadataTableFile: orderedMetadata,
		ps2.MainTableFile: "EventID,SubjectID,ProblemID,EventType,CodeStateID,Order,Score\n" +
			"1,S1,P1,File.Edit,10,1,0\n" +
			"2,S1,P1,Submit,11,2,1\n" +
			"3,S2,P2,Submit,12,3,0.5\n",
		ps2.CodeStatesPath(): "CodeStateID,Code\n" +
			"10,print(1)\n" +
			"11,print(2)\n" +
			"12,print(3)\n",
		filepath.Join(ps2.LinkTableDir, "LinkProblem.csv"): "ProblemID,StarterCode\n" +
			"P1,start one\n" +
			"P2,start two\n" +
			"P3,start three\n",
		filepath.Join(ps2.LinkTableDir, "LinkSubject.csv"): "SubjectID,IsInterventionGroup\n" +
			"S1,1\n" +
			"S2,0\n" +
			"S3,1\n",
	})
	return New(dir)
}

func TestSaveSubset_FiltersMainTableAndCodeStates(t *testing.T) {
	target := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, subsetSource(t).SaveSubset(target, scoreAbove(0), true))

	sub := New(target)
	main, err := sub.MainTable()
	require.NoError(t, err)
	require.Len(t, main.Rows, 2)
	assert.Equal(t, "2", main.Rows[0][0])
	assert.Equal(t, "3", main.Rows[1][0])

	// Exactly the referenced snapshots survive: no orphans, no omissions.
	codeStates, err := sub.CodeStatesTable()
	require.NoError(t, err)
	ids, err := codeStates.Distinct(ps2.ColCodeStateID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"11", "12"}, ids)
}

func TestSaveSubset_CopiesMetadataUnchanged(t *testing.T) {
	target := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, subsetSource(t).SaveSubset(target, scoreAbove(0), false))

	version, ok, err := New(target).MetadataProperty(ps2.PropVersion)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "8.0", version)
}

func TestSaveSubset_FiltersLinkTablesByKeyMembership(t *testing.T) {
	target := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, subsetSource(t).SaveSubset(target, scoreAbove(0), true))

	sub := New(target)
	problems, err := sub.LoadLinkTable("LinkProblem")
	require.NoError(t, err)
	var problemIDs []string
	for _, row := range problems.Rows {
		problemIDs = append(problemIDs, row[0])
	}
	assert.ElementsMatch(t, []string{"P1", "P2"}, problemIDs)

	subjects, err := sub.LoadLinkTable("LinkSubject")
	require.NoError(t, err)
	var subjectIDs []string
	for _, row := range subjects.Rows {
		subjectIDs = append(subjectIDs, row[0])
	}
	assert.ElementsMatch(t, []string{"S1", "S2"}, subjectIDs)
}

func TestSaveSubset_SkipsLinkTablesWhenDisabled(t *testing.T) {
	target := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, subsetSource(t).SaveSubset(target, nil, false))

	_, err := os.Stat(filepath.Join(target, ps2.LinkTableDir))
	assert.True(t, os.IsNotExist(err), "link tables directory should not exist")
}

func TestSaveSubset_NilFilterCopiesEverything(t *testing.T) {
	target := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, subsetSource(t).SaveSubset(target, nil, true))

	main, err := New(target).MainTable()
	require.NoError(t, err)
	assert.Len(t, main.Rows, 3)
}

// Multi-column link tables filter on the full ID tuple, not any single
// column: a row whose SubjectID and ProblemID both occur in the main table,
// but never on the same event, must not survive.
func TestSaveSubset_MultiKeyLinkTableFiltersOnTuple(t *testing.T) {
	dir := writeDataset(t, map[string]string{
		ps2.MetadataTableFile: "Property,Value\nIsEventOrderingConsistent,0\n",
		ps2.MainTableFile: "EventID,SubjectID,ProblemID,CodeStateID\n" +
			"1,S1,P1,10\n" +
			"2,S2,P2,10\n",
		ps2.CodeStatesPath(): "CodeStateID,Code\n10,print(1)\n",
		filepath.Join(ps2.LinkTableDir, "LinkAttempt.csv"): "SubjectID,ProblemID,Attempt\n" +
			"S1,P1,1\n" +
			"S1,P2,1\n" +
			"S2,P2,3\n",
	})
	target := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, New(dir).SaveSubset(target, nil, true))

	link, err := New(target).LoadLinkTable("LinkAttempt")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"S1", "P1", "1"},
		{"S2", "P2", "3"},
	}, link.Rows)
}

func TestSaveSubset_GoldenOutput(t *testing.T) {
	target := filepath.Join(t.TempDir(), "subset")

	require.NoError(t, subsetSource(t).SaveSubset(target, scoreAbove(0), true))

	mainCSV, err := os.ReadFile(filepath.Join(target, ps2.MainTableFile))
	require.NoError(t, err)
	codeCSV, err := os.ReadFile(filepath.Join(target, ps2.CodeStatesPath()))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "subset_main_table", mainCSV)
	g.Assert(t, "subset_code_states", codeCSV)
}
