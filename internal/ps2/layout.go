package ps2

import "path/filepath"

// On-disk layout of an exported dataset directory. All tabular files are CSV
// with a header row.
const (
	MainTableFile     = "MainTable.csv"
	MetadataTableFile = "DatasetMetadata.csv"
	LinkTableDir      = "LinkTables"
	CodeStatesDir     = "CodeStates"
	CodeStatesFile    = "CodeStates.csv"
	TableFileExt      = ".csv"
)

// CodeStatesPath returns the code-states file path relative to a dataset root.
func CodeStatesPath() string {
	return filepath.Join(CodeStatesDir, CodeStatesFile)
}
