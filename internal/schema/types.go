package schema

import "fmt"

// Database represents a complete normalized database schema
type Database struct {
	Schemas []Schema       `json:"schemas"`
	Custom  map[string]any `json:"custom,omitempty"`
}

// Schema represents one database namespace
type Schema struct {
	Name      string  `json:"name"`
	Namespace string  `json:"namespaceName"`
	Tables    []Table `json:"tables"`
	Enums     []Enum  `json:"enums"`
}

// Table represents a database table
type Table struct {
	Name                 string   `json:"name"`
	Schema               string   `json:"schema"`
	Comment              string   `json:"comment,omitempty"`
	InterfaceName        string   `json:"interfaceName"`
	Columns              []Column `json:"columns"`
	Extends              string   `json:"extends,omitempty"`
	AdditionalProperties []string `json:"additionalProperties,omitempty"`
}

// Column represents a table column. Kind decides which of EnumSchema and
// StringEnumValues carries data.
type Column struct {
	Name             string     `json:"name"`
	PropertyName     string     `json:"propertyName"`
	RawType          string     `json:"type"`
	Type             string     `json:"propertyType"`
	Nullable         bool       `json:"nullable"`
	Optional         bool       `json:"optional"`
	Kind             ColumnKind `json:"kind"`
	IsPrimaryKey     bool       `json:"isPrimaryKey"`
	DefaultValue     *string    `json:"defaultValue,omitempty"`
	Comment          string     `json:"comment,omitempty"`
	EnumSchema       string     `json:"enumSchema,omitempty"`
	StringEnumValues []string   `json:"stringEnumValues,omitempty"`
}

// Enum represents an enum declaration, either native or read from a table
type Enum struct {
	Name          string      `json:"name"`
	Schema        string      `json:"schema"`
	ConvertedName string      `json:"convertedName"`
	Values        []EnumValue `json:"values"`
}

// EnumValue is a single enum member. Value holds a string or a number.
type EnumValue struct {
	Key          string `json:"originalKey"`
	ConvertedKey string `json:"convertedKey"`
	Value        any    `json:"value"`
}

// ColumnKind tells how a column's type is derived
type ColumnKind int

const (
	// KindStandard columns map through overrides and type maps.
	KindStandard ColumnKind = iota
	// KindNumericEnum columns refer to a named Enum declaration.
	KindNumericEnum
	// KindStringEnum columns carry their own literal value set.
	KindStringEnum
)

func (k ColumnKind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindNumericEnum:
		return "numericEnum"
	case KindStringEnum:
		return "stringEnum"
	default:
		return fmt.Sprintf("ColumnKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k ColumnKind) MarshalText() ([]byte, error) {
	switch k {
	case KindStandard, KindNumericEnum, KindStringEnum:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid column kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ColumnKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "standard", "":
		*k = KindStandard
	case "numericEnum":
		*k = KindNumericEnum
	case "stringEnum":
		*k = KindStringEnum
	default:
		return fmt.Errorf("invalid column kind %q", string(text))
	}
	return nil
}

// FindSchema returns the schema with the given raw name
func (d *Database) FindSchema(name string) *Schema {
	for i := range d.Schemas {
		if d.Schemas[i].Name == name {
			return &d.Schemas[i]
		}
	}
	return nil
}

// FindTable returns the table with the given name
func (s *Schema) FindTable(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// FindColumn returns the column with the given name
func (t *Table) FindColumn(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}
