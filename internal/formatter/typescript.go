package formatter

import (
	"embed"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
	"github.com/spf13/afero"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

//go:embed templates/typescript.tmpl
var templateFS embed.FS

const defaultTemplateName = "templates/typescript.tmpl"

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// TemplateData is the value templates execute against
type TemplateData struct {
	Schemas []schema.Schema
	Config  *config.Config
	Custom  map[string]any
}

// TypeScriptFormatter renders declarations through a text/template
type TypeScriptFormatter struct {
	writer io.Writer
	tmpl   *template.Template
	cfg    *config.Config
}

// NewTypeScriptFormatter creates a formatter executing tmpl
func NewTypeScriptFormatter(w io.Writer, tmpl *template.Template, cfg *config.Config) *TypeScriptFormatter {
	return &TypeScriptFormatter{writer: w, tmpl: tmpl, cfg: cfg}
}

// Format executes the template against db
func (f *TypeScriptFormatter) Format(db *schema.Database) error {
	data := TemplateData{Schemas: db.Schemas, Config: f.cfg, Custom: db.Custom}
	if data.Config == nil {
		data.Config = &config.Config{}
	}
	if err := f.tmpl.Execute(f.writer, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}

// DefaultTemplate parses the built-in TypeScript template
func DefaultTemplate() (*template.Template, error) {
	src, err := templateFS.ReadFile(defaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("failed to read default template: %w", err)
	}
	return ParseTemplate("typescript", string(src))
}

// LoadTemplate reads and parses the template at path, or the default
// template when path is empty
func LoadTemplate(fs afero.Fs, path string) (*template.Template, error) {
	if path == "" {
		return DefaultTemplate()
	}
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return ParseTemplate(path, string(src))
}

// ParseTemplate parses src with the generator's helper functions
func ParseTemplate(name, src string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(Funcs()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Funcs returns the helper functions available to templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"toCamel":     strcase.ToLowerCamel,
		"toPascal":    strcase.ToCamel,
		"toSnake":     strcase.ToSnake,
		"singular":    inflection.Singular,
		"plural":      inflection.Plural,
		"join":        func(elems []string, sep string) string { return strings.Join(elems, sep) },
		"propertyKey": memberName,
		"enumKey":     memberName,
		"literal":     literal,
		"docComment":  docComment,
		"indent": func(on bool) string {
			if on {
				return "  "
			}
			return ""
		},
	}
}

// memberName quotes names that are not valid identifiers
func memberName(name string) string {
	if identifier.MatchString(name) {
		return name
	}
	return quote(name)
}

// literal renders an enum value: strings quoted, numbers and booleans bare
func literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(t)
	case []byte:
		return quote(string(t))
	case bool:
		return strconv.FormatBool(t)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(t))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

// docComment keeps a comment from closing its block early and folds it
// onto one line
func docComment(s string) string {
	s = strings.ReplaceAll(s, "*/", `*\/`)
	return strings.Join(strings.Fields(s), " ")
}
