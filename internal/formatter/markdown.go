package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/sqlts/internal/schema"
)

// MarkdownFormatter formats the model as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes every schema in markdown format
func (f *MarkdownFormatter) Format(db *schema.Database) error {
	_, _ = fmt.Fprintln(f.writer, "# Database Schema")
	_, _ = fmt.Fprintln(f.writer)

	for _, s := range db.Schemas {
		f.formatSchema(s)
	}
	return nil
}

// formatSchema writes one schema section
func (f *MarkdownFormatter) formatSchema(s schema.Schema) {
	_, _ = fmt.Fprintf(f.writer, "## Schema %s\n\n", displaySchema(s.Name))

	for _, table := range s.Tables {
		f.formatTable(table)
	}
	for _, enum := range s.Enums {
		f.formatEnum(enum)
	}
}

func (f *MarkdownFormatter) formatTable(table schema.Table) {
	_, _ = fmt.Fprintf(f.writer, "### %s\n\n", table.Name)
	if table.Comment != "" {
		_, _ = fmt.Fprintf(f.writer, "%s\n\n", table.Comment)
	}

	_, _ = fmt.Fprintf(f.writer, "Interface: `%s`", table.InterfaceName)
	if table.Extends != "" {
		_, _ = fmt.Fprintf(f.writer, " extends `%s`", table.Extends)
	}
	_, _ = fmt.Fprint(f.writer, "\n\n")

	for _, col := range table.Columns {
		constraintStr := formatConstraints(col)
		if constraintStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s → `%s`, %s\n", col.Name, col.RawType, col.Type, constraintStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s → `%s`\n", col.Name, col.RawType, col.Type)
		}
	}
	for _, prop := range table.AdditionalProperties {
		_, _ = fmt.Fprintf(f.writer, "- `%s` (additional)\n", prop)
	}
	_, _ = fmt.Fprintln(f.writer)
}

func (f *MarkdownFormatter) formatEnum(enum schema.Enum) {
	_, _ = fmt.Fprintf(f.writer, "### enum %s\n\n", enum.Name)
	for _, v := range enum.Values {
		_, _ = fmt.Fprintf(f.writer, "- %s = %v\n", v.ConvertedKey, v.Value)
	}
	_, _ = fmt.Fprintln(f.writer)
}

func formatConstraints(col schema.Column) string {
	var constraints []string

	if col.IsPrimaryKey {
		constraints = append(constraints, "PK")
	}
	if !col.Nullable {
		constraints = append(constraints, "NOT NULL")
	}
	if col.Optional {
		constraints = append(constraints, "optional")
	}
	if col.DefaultValue != nil {
		constraints = append(constraints, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}
	if col.Comment != "" {
		constraints = append(constraints, col.Comment)
	}

	return strings.Join(constraints, ", ")
}

func displaySchema(name string) string {
	if name == "" {
		return "(default)"
	}
	return name
}
