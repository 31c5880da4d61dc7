// Package naming turns raw database identifiers into names that are safe to
// emit as identifiers in generated code. Every function is total: unknown
// casings and empty inputs pass through instead of failing.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"

	"github.com/tordrt/sqlts/internal/config"
)

// Case is a casing style accepted by ConvertCase
type Case string

// Recognized casing styles. The zero value leaves names untouched.
const (
	Pascal Case = "pascal"
	Camel  Case = "camel"
	Lower  Case = "lower"
	Upper  Case = "upper"
)

var (
	nonWord       = regexp.MustCompile(`\W`)
	leadingDigits = regexp.MustCompile(`^\d+`)
	separators    = regexp.MustCompile(`[_\-\s]+`)
	// decimal literals only; inf, NaN and hex floats are words here
	numericKey    = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// ConvertCase re-cases name. Separators (_, -, space) collapse under
// pascal and camel while existing capital runs survive.
func ConvertCase(name string, c Case) string {
	switch c {
	case Pascal:
		return joinWords(name, false)
	case Camel:
		return joinWords(name, true)
	case Lower:
		return strings.ToLower(name)
	case Upper:
		return strings.ToUpper(name)
	default:
		return name
	}
}

// SchemaName strips characters that cannot appear in an identifier along
// with any leading digits. An empty name stays empty.
func SchemaName(name string) string {
	if name == "" {
		return name
	}
	return leadingDigits.ReplaceAllString(nonWord.ReplaceAllString(name, ""), "")
}

// InterfaceName builds the generated interface name of a table
func InterfaceName(table string, cfg *config.Config) string {
	name := strings.ReplaceAll(table, " ", "_")
	if cfg.SingularTableNames {
		name = inflection.Singular(name)
	}
	name = nonWord.ReplaceAllString(ConvertCase(name, Case(cfg.TableNameCasing)), "")
	return strings.ReplaceAll(formatOrDefault(cfg.InterfaceNameFormat, config.DefaultInterfaceNameFormat), config.TablePlaceholder, name)
}

// EnumName builds the generated name of an enum
func EnumName(name string, cfg *config.Config) string {
	name = nonWord.ReplaceAllString(ConvertCase(name, Case(cfg.EnumNameCasing)), "")
	return strings.ReplaceAll(formatOrDefault(cfg.EnumNameFormat, config.DefaultEnumNameFormat), config.NamePlaceholder, name)
}

// EnumKey builds the member name of an enum value. Keys that read as a
// number are wrapped in the numeric key format since bare numbers are not
// valid member names.
func EnumKey(key string, cfg *config.Config) string {
	key = ConvertCase(key, Case(cfg.EnumKeyCasing))
	if isNumeric(key) {
		return strings.ReplaceAll(formatOrDefault(cfg.EnumNumericKeyFormat, config.DefaultEnumNumericKeyFormat), config.KeyPlaceholder, key)
	}
	return key
}

// PropertyName builds the generated property name of a column
func PropertyName(column string, cfg *config.Config) string {
	return ConvertCase(column, Case(cfg.ColumnNameCasing))
}

// FullTableName returns schema.table, or table when schema is empty
func FullTableName(table, schema string) string {
	if schema == "" {
		return table
	}
	return schema + "." + table
}

// FullColumnName returns schema.table.column, or table.column when schema
// is empty. It keys per-column overrides.
func FullColumnName(table, schema, column string) string {
	return FullTableName(table, schema) + "." + column
}

// joinWords upper-cases the first letter of every separator-delimited word
// and leaves the rest of each word alone, so "user_ID" becomes "UserID".
func joinWords(name string, lowerFirst bool) string {
	var b strings.Builder
	for _, w := range separators.Split(name, -1) {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	out := b.String()
	if lowerFirst && out != "" {
		r, size := utf8.DecodeRuneInString(out)
		out = string(unicode.ToLower(r)) + out[size:]
	}
	return out
}

func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return numericKey.MatchString(s)
}

func formatOrDefault(format, def string) string {
	if format == "" {
		return def
	}
	return format
}
