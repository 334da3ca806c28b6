package ps2

// Metadata property names.
const (
	PropVersion                   = "Version"
	PropIsEventOrderingConsistent = "IsEventOrderingConsistent"
	PropEventOrderScope           = "EventOrderScope"
	PropEventOrderScopeColumns    = "EventOrderScopeColumns"
	PropCodeStateRepresentation   = "CodeStateRepresentation"
)

// Event ordering scopes. When the scope is Restricted, the Order column is
// meaningful only within groups defined by EventOrderScopeColumns (a
// semicolon-delimited column list).
const (
	OrderScopeGlobal     = "Global"
	OrderScopeRestricted = "Restricted"
	OrderScopeNone       = "None"
)

// ScopeColumnSeparator delimits grouping columns in EventOrderScopeColumns.
const ScopeColumnSeparator = ";"

// SeedMetadata returns the fixed metadata stamp written once when a new store
// is created: schema version, globally consistent event ordering, and the
// internal (SQLite) code-state representation. Property order is stable so
// exported metadata files are deterministic.
func SeedMetadata() []Property {
	return []Property{
		{PropVersion, "8.0"},
		{PropIsEventOrderingConsistent, "1"},
		{PropEventOrderScope, OrderScopeGlobal},
		{PropEventOrderScopeColumns, ""},
		{PropCodeStateRepresentation, "Sqlite"},
	}
}

// Property is one row of the dataset metadata table.
type Property struct {
	Name  string
	Value string
}
