package ps2

// Standard event-type tags. The store accepts any string tag; these constants
// cover the upstream vocabulary (session/project/file lifecycle, compilation,
// submission, execution, resources, interventions).
const (
	// EventSessionStart marks the start of a work session.
	EventSessionStart = "Session.Start"
	// EventSessionEnd marks the end of a work session.
	EventSessionEnd = "Session.End"
	// EventProjectOpen indicates that a project was opened.
	EventProjectOpen = "Project.Open"
	// EventProjectClose indicates that a project was closed. Consumers should
	// be prepared for Project.Open events with no matching Project.Close.
	EventProjectClose = "Project.Close"
	// EventFileCreate indicates that a file was created.
	EventFileCreate = "File.Create"
	// EventFileDelete indicates that a file was deleted.
	EventFileDelete = "File.Delete"
	// EventFileOpen indicates that a file was opened.
	EventFileOpen = "File.Open"
	// EventFileClose indicates that a file was closed.
	EventFileClose = "File.Close"
	// EventFileSave indicates that a file was saved.
	EventFileSave = "File.Save"
	// EventFileRename indicates that a file was renamed.
	EventFileRename = "File.Rename"
	// EventFileCopy indicates that a file was copied.
	EventFileCopy = "File.Copy"
	// EventFileEdit indicates that the contents of a file were edited.
	EventFileEdit = "File.Edit"
	// EventFileFocus indicates that a file was selected in the UI.
	EventFileFocus = "File.Focus"
	// EventCompile indicates an attempt to compile all or part of the code.
	EventCompile = "Compile"
	// EventCompileError represents a compilation error and its diagnostic.
	EventCompileError = "Compile.Error"
	// EventCompileWarning represents a compilation warning and its diagnostic.
	EventCompileWarning = "Compile.Warning"
	// EventSubmit indicates that code was submitted to the system.
	EventSubmit = "Submit"
	// EventRunProgram indicates a program execution.
	EventRunProgram = "Run.Program"
	// EventRunTest indicates execution of a test.
	EventRunTest = "Run.Test"
	// EventDebugProgram indicates a debug execution of the program.
	EventDebugProgram = "Debug.Program"
	// EventDebugTest indicates a debug execution of a test.
	EventDebugTest = "Debug.Test"
	// EventResourceView indicates that a learning resource was viewed.
	EventResourceView = "Resource.View"
	// EventIntervention indicates that an intervention such as a hint occurred.
	EventIntervention = "Intervention"
)
