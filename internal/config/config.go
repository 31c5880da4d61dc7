package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownDialect is returned for a client name with no registered adapter.
	ErrUnknownDialect = errors.New("unknown database dialect")
	// ErrInvalidConfig is returned for an unrecognized option value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Canonical dialect names
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectMSSQL    = "mssql"
	DialectSQLite   = "sqlite"
)

// Optionality policies
const (
	OptionalityRequired = "required"
	OptionalityOptional = "optional"
	OptionalityDynamic  = "dynamic"
)

// Column sort orders
const (
	SortSource       = "source"
	SortAlphabetical = "alphabetical"
)

// Format placeholders
const (
	TablePlaceholder = "${table}"
	NamePlaceholder  = "${name}"
	KeyPlaceholder   = "${key}"
)

// Defaults
const (
	DefaultInterfaceNameFormat  = TablePlaceholder + "Entity"
	DefaultEnumNameFormat       = NamePlaceholder
	DefaultEnumNumericKeyFormat = "_" + KeyPlaceholder
	DefaultFilename             = "Database"
	DefaultFolder               = "."
)

var dialectAliases = map[string]string{
	"postgres":   DialectPostgres,
	"postgresql": DialectPostgres,
	"pg":         DialectPostgres,
	"mysql":      DialectMySQL,
	"mysql2":     DialectMySQL,
	"mssql":      DialectMSSQL,
	"sqlserver":  DialectMSSQL,
	"tedious":    DialectMSSQL,
	"sqlite":     DialectSQLite,
	"sqlite3":    DialectSQLite,
}

var casings = map[string]bool{
	"":       true,
	"pascal": true,
	"camel":  true,
	"lower":  true,
	"upper":  true,
}

// TableEnum declares a table whose rows form an enum
type TableEnum struct {
	Key   string `mapstructure:"key" json:"key"`
	Value string `mapstructure:"value" json:"value"`
}

// Config holds every option recognized by the generator
type Config struct {
	Client     string   `mapstructure:"client" json:"client"`
	Connection string   `mapstructure:"connection" json:"connection"`
	Schemas    []string `mapstructure:"schemas" json:"schemas,omitempty"`

	// Tables and ExcludedTables hold schema.table identifiers.
	Tables         []string `mapstructure:"tables" json:"tables,omitempty"`
	ExcludedTables []string `mapstructure:"excludedTables" json:"excludedTables,omitempty"`

	InterfaceNameFormat  string `mapstructure:"interfaceNameFormat" json:"interfaceNameFormat"`
	EnumNameFormat       string `mapstructure:"enumNameFormat" json:"enumNameFormat"`
	EnumNumericKeyFormat string `mapstructure:"enumNumericKeyFormat" json:"enumNumericKeyFormat"`

	TableNameCasing  string `mapstructure:"tableNameCasing" json:"tableNameCasing,omitempty"`
	ColumnNameCasing string `mapstructure:"columnNameCasing" json:"columnNameCasing,omitempty"`
	EnumNameCasing   string `mapstructure:"enumNameCasing" json:"enumNameCasing,omitempty"`
	EnumKeyCasing    string `mapstructure:"enumKeyCasing" json:"enumKeyCasing,omitempty"`

	SingularTableNames bool   `mapstructure:"singularTableNames" json:"singularTableNames"`
	SchemaAsNamespace  bool   `mapstructure:"schemaAsNamespace" json:"schemaAsNamespace"`
	ColumnSortOrder    string `mapstructure:"columnSortOrder" json:"columnSortOrder"`

	GlobalOptionality string            `mapstructure:"globalOptionality" json:"globalOptionality"`
	ColumnOptionality map[string]string `mapstructure:"columnOptionality" json:"columnOptionality,omitempty"`

	// TypeMap maps an output type to the raw database types it covers.
	TypeMap       map[string][]string `mapstructure:"typeMap" json:"typeMap,omitempty"`
	TypeOverrides map[string]string   `mapstructure:"typeOverrides" json:"typeOverrides,omitempty"`

	AdditionalProperties map[string][]string  `mapstructure:"additionalProperties" json:"additionalProperties,omitempty"`
	Extends              map[string]string    `mapstructure:"extends" json:"extends,omitempty"`
	TableEnums           map[string]TableEnum `mapstructure:"tableEnums" json:"tableEnums,omitempty"`

	Custom map[string]any `mapstructure:"custom" json:"custom,omitempty"`

	Template string `mapstructure:"template" json:"template,omitempty"`
	Filename string `mapstructure:"filename" json:"filename"`
	Folder   string `mapstructure:"folder" json:"folder"`
}

// NormalizeDialect maps a client name or alias to its canonical dialect
func NormalizeDialect(name string) (string, error) {
	if d, ok := dialectAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

// ApplyDefaults fills unset options with their defaults
func (c *Config) ApplyDefaults() {
	if c.InterfaceNameFormat == "" {
		c.InterfaceNameFormat = DefaultInterfaceNameFormat
	}
	if c.EnumNameFormat == "" {
		c.EnumNameFormat = DefaultEnumNameFormat
	}
	if c.EnumNumericKeyFormat == "" {
		c.EnumNumericKeyFormat = DefaultEnumNumericKeyFormat
	}
	if c.ColumnSortOrder == "" {
		c.ColumnSortOrder = SortSource
	}
	if c.GlobalOptionality == "" {
		c.GlobalOptionality = OptionalityOptional
	}
	if c.Filename == "" {
		c.Filename = DefaultFilename
	}
	if c.Folder == "" {
		c.Folder = DefaultFolder
	}
}

// Validate checks option values and canonicalizes the client name.
// A config that only feeds the object-input path may leave Client empty.
func (c *Config) Validate() error {
	if c.Client != "" {
		d, err := NormalizeDialect(c.Client)
		if err != nil {
			return err
		}
		c.Client = d
	}

	for opt, v := range map[string]string{
		"tableNameCasing":  c.TableNameCasing,
		"columnNameCasing": c.ColumnNameCasing,
		"enumNameCasing":   c.EnumNameCasing,
		"enumKeyCasing":    c.EnumKeyCasing,
	} {
		if !casings[v] {
			return fmt.Errorf("%w: %s %q (must be pascal, camel, lower or upper)", ErrInvalidConfig, opt, v)
		}
	}

	switch c.ColumnSortOrder {
	case SortSource, SortAlphabetical:
	default:
		return fmt.Errorf("%w: columnSortOrder %q (must be source or alphabetical)", ErrInvalidConfig, c.ColumnSortOrder)
	}

	if !validOptionality(c.GlobalOptionality) {
		return fmt.Errorf("%w: globalOptionality %q (must be required, optional or dynamic)", ErrInvalidConfig, c.GlobalOptionality)
	}
	for col, v := range c.ColumnOptionality {
		if !validOptionality(v) {
			return fmt.Errorf("%w: columnOptionality[%s] %q (must be required, optional or dynamic)", ErrInvalidConfig, col, v)
		}
	}

	if !strings.Contains(c.InterfaceNameFormat, TablePlaceholder) {
		return fmt.Errorf("%w: interfaceNameFormat %q is missing %s", ErrInvalidConfig, c.InterfaceNameFormat, TablePlaceholder)
	}
	if !strings.Contains(c.EnumNameFormat, NamePlaceholder) {
		return fmt.Errorf("%w: enumNameFormat %q is missing %s", ErrInvalidConfig, c.EnumNameFormat, NamePlaceholder)
	}
	if !strings.Contains(c.EnumNumericKeyFormat, KeyPlaceholder) {
		return fmt.Errorf("%w: enumNumericKeyFormat %q is missing %s", ErrInvalidConfig, c.EnumNumericKeyFormat, KeyPlaceholder)
	}

	for name, te := range c.TableEnums {
		if te.Key == "" || te.Value == "" {
			return fmt.Errorf("%w: tableEnums[%s] needs both key and value columns", ErrInvalidConfig, name)
		}
	}

	return nil
}

// RequireConnection reports a missing client or connection for the
// introspection path
func (c *Config) RequireConnection() error {
	if c.Client == "" {
		return fmt.Errorf("%w: client is required", ErrInvalidConfig)
	}
	if c.Connection == "" {
		return fmt.Errorf("%w: connection is required for client %s", ErrInvalidConfig, c.Client)
	}
	return nil
}

func validOptionality(v string) bool {
	switch v {
	case OptionalityRequired, OptionalityOptional, OptionalityDynamic:
		return true
	}
	return false
}
