// Package typemap resolves the output type and optionality of columns.
package typemap

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/debug"
	"github.com/tordrt/sqlts/internal/naming"
	"github.com/tordrt/sqlts/internal/schema"
)

const arraySuffix = "[]"

var (
	typeModifier = regexp.MustCompile(`\([^)]*\)`)
	spaces       = regexp.MustCompile(`\s+`)
)

var defaultIndex = reverseIndex(DefaultTypeMap)

// Resolver decides output types and optionality for one config
type Resolver struct {
	cfg         *config.Config
	userIndex   map[string]string
	overrides   naming.QualifiedMap[string]
	optionality naming.QualifiedMap[string]
}

// NewResolver creates a resolver for cfg
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		cfg:         cfg,
		userIndex:   reverseIndex(cfg.TypeMap),
		overrides:   naming.NewQualifiedMap(cfg.TypeOverrides),
		optionality: naming.NewQualifiedMap(cfg.ColumnOptionality),
	}
}

// ConvertType returns the output type expression of col, which belongs to
// table in schemaName
func (r *Resolver) ConvertType(col schema.Column, table, schemaName string) string {
	switch col.Kind {
	case schema.KindStringEnum:
		return StringUnion(col.StringEnumValues)
	case schema.KindNumericEnum:
		elem, isArray := strings.CutSuffix(col.RawType, arraySuffix)
		name := naming.EnumName(elem, r.cfg)
		if r.cfg.SchemaAsNamespace && col.EnumSchema != "" {
			name = naming.SchemaName(col.EnumSchema) + "." + name
		}
		if isArray {
			name += arraySuffix
		}
		return name
	case schema.KindStandard:
		return r.ConvertStandardType(col.RawType, naming.FullColumnName(table, schemaName, col.Name))
	default:
		debug.Warn("unknown column kind, using fallback", "column", col.Name, "kind", int(col.Kind))
		return FallbackType
	}
}

// ConvertStandardType resolves a raw type in precedence order: per-column
// override, user type map, default type map, then FallbackType
func (r *Resolver) ConvertStandardType(rawType, fullColumnName string) string {
	if override, ok := r.overrides.Get(fullColumnName); ok {
		return override
	}

	normalized := NormalizeRawType(rawType)
	if elem, ok := strings.CutSuffix(normalized, arraySuffix); ok {
		t := r.resolveNamed(elem, fullColumnName)
		if strings.Contains(t, "|") {
			t = "(" + t + ")"
		}
		return t + arraySuffix
	}
	return r.resolveNamed(normalized, fullColumnName)
}

func (r *Resolver) resolveNamed(normalized, fullColumnName string) string {
	if t, ok := r.userIndex[normalized]; ok {
		return t
	}
	if t, ok := defaultIndex[normalized]; ok {
		return t
	}
	debug.Debug("no type mapping, using fallback", "column", fullColumnName, "type", normalized, "fallback", FallbackType)
	return FallbackType
}

// Optionality reports whether a column may be omitted. rawOptional is the
// adapter's flag and only counts under the dynamic policy.
func (r *Resolver) Optionality(rawOptional bool, fullColumnName string) bool {
	policy, ok := r.optionality.Get(fullColumnName)
	if !ok {
		policy = r.cfg.GlobalOptionality
	}
	switch policy {
	case config.OptionalityRequired:
		return false
	case config.OptionalityDynamic:
		return rawOptional
	default:
		return true
	}
}

// StringUnion renders values as a union of single-quoted literals
func StringUnion(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), "'", `\'`) + "'"
	}
	return strings.Join(quoted, " | ")
}

// NormalizeRawType lower-cases a raw type and drops length, precision and
// similar modifiers: "VARCHAR(255)" becomes "varchar".
func NormalizeRawType(rawType string) string {
	t := strings.ToLower(strings.TrimSpace(rawType))
	t = typeModifier.ReplaceAllString(t, "")
	return strings.TrimSpace(spaces.ReplaceAllString(t, " "))
}

// reverseIndex turns output -> raw types into raw type -> output. When two
// outputs claim the same raw type the alphabetically first output wins.
func reverseIndex(m map[string][]string) map[string]string {
	outputs := make([]string, 0, len(m))
	for out := range m {
		outputs = append(outputs, out)
	}
	sort.Strings(outputs)

	idx := make(map[string]string)
	for _, out := range outputs {
		for _, raw := range m[out] {
			key := NormalizeRawType(raw)
			if _, taken := idx[key]; !taken {
				idx[key] = out
			}
		}
	}
	return idx
}
