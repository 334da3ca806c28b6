package ps2

// Persisted table names.
const (
	MainTable       = "MainTable"
	CodeStatesTable = "CodeStates"
	MetadataTable   = "DatasetMetadata"
	ProblemTable    = "LinkProblem"
	SubjectTable    = "LinkSubject"
)

// Column names used across the main table, code-state store, and link tables.
// The full upstream vocabulary is declared even where this implementation
// persists only a subset, so analysis code can reference any standard column.
const (
	ColOrder               = "Order"
	ColSubjectID           = "SubjectID"
	ColToolInstances       = "ToolInstances"
	ColServerTimestamp     = "ServerTimestamp"
	ColServerTimezone      = "ServerTimezone"
	ColClientTimestamp     = "ClientTimestamp"
	ColCourseID            = "CourseID"
	ColCourseSectionID     = "CourseSectionID"
	ColAssignmentID        = "AssignmentID"
	ColProblemID           = "ProblemID"
	ColAttempt             = "Attempt"
	ColCodeStateID         = "CodeStateID"
	ColEventType           = "EventType"
	ColScore               = "Score"
	ColCompileResult       = "CompileResult"
	ColCompileMessageType  = "CompileMessageType"
	ColCompileMessageData  = "CompileMessageData"
	ColEventID             = "EventID"
	ColParentEventID       = "ParentEventID"
	ColSourceLocation      = "SourceLocation"
	ColCode                = "Code"
	ColStarterCode         = "StarterCode"
	ColSubgoals            = "Subgoals"
	ColIsInterventionGroup = "IsInterventionGroup"
	ColProperty            = "Property"
	ColValue               = "Value"
)

// MainTableColumns is the declared column set of the main event table, in
// persisted order. EventID is the store-assigned surrogate key and is never
// supplied by callers.
var MainTableColumns = []string{
	ColEventID,
	ColSubjectID,
	ColProblemID,
	ColAssignmentID,
	ColEventType,
	ColCodeStateID,
	ColClientTimestamp,
	ColServerTimestamp,
	ColScore,
}

// CodeStatesColumns is the declared column set of the code-snapshot store.
var CodeStatesColumns = []string{ColCodeStateID, ColCode}

// MetadataColumns is the declared column set of the metadata table.
var MetadataColumns = []string{ColProperty, ColValue}

// ProblemColumns is the declared column set of the problem link table.
var ProblemColumns = []string{ColProblemID, ColStarterCode, ColSubgoals}

// SubjectColumns is the declared column set of the subject link table.
var SubjectColumns = []string{ColSubjectID, ColIsInterventionGroup}

// TableColumns maps each persisted table to its declared column set.
var TableColumns = map[string][]string{
	MainTable:       MainTableColumns,
	CodeStatesTable: CodeStatesColumns,
	MetadataTable:   MetadataColumns,
	ProblemTable:    ProblemColumns,
	SubjectTable:    SubjectColumns,
}

// IsTable reports whether name is a declared persisted table.
func IsTable(name string) bool {
	_, ok := TableColumns[name]
	return ok
}
