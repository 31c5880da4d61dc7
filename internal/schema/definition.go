package schema

// TableDefinition is a table as reported by a dialect adapter
type TableDefinition struct {
	Name    string
	Schema  string
	Comment string
}

// ColumnDefinition is a column as reported by a dialect adapter.
// Optional is the adapter's own view: nullable, defaulted or generated.
type ColumnDefinition struct {
	Name             string
	Type             string
	Nullable         bool
	Optional         bool
	IsEnum           bool
	EnumSchema       string
	StringEnumValues []string
	IsPrimaryKey     bool
	DefaultValue     *string
	Comment          string
}

// EnumDefinition is an enum as reported by a dialect adapter, keyed by
// original member key. One adapter row may carry only part of an enum.
type EnumDefinition struct {
	Name   string
	Schema string
	Values map[string]any
}
