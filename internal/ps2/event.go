package ps2

// Event is one loggable action. Pointer fields are nullable columns: a nil
// field is persisted as NULL. CodeState carries the raw code text and is
// resolved by the store to a deduplicated CodeStateID; it is not a column of
// the main table itself.
//
// EventID is absent on purpose: the surrogate key is always store-assigned.
type Event struct {
	SubjectID       *string
	ProblemID       *string
	AssignmentID    *string
	CodeState       *string
	ClientTimestamp *string
	ServerTimestamp *string
	Score           *float64
}

// String returns a pointer to s, for filling optional Event fields.
func String(s string) *string { return &s }

// Float returns a pointer to f, for filling optional Event fields.
func Float(f float64) *float64 { return &f }
