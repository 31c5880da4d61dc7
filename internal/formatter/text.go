package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/sqlts/internal/schema"
)

// TextFormatter formats the model as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes every table and enum in compact text format
func (f *TextFormatter) Format(db *schema.Database) error {
	first := true
	for _, s := range db.Schemas {
		for _, table := range s.Tables {
			if !first {
				_, _ = fmt.Fprintln(f.writer) // Blank line between blocks
			}
			first = false
			f.formatTable(table)
		}
		for _, enum := range s.Enums {
			if !first {
				_, _ = fmt.Fprintln(f.writer)
			}
			first = false
			f.formatEnum(enum)
		}
	}
	return nil
}

func (f *TextFormatter) formatTable(table schema.Table) {
	var pk []string
	for _, col := range table.Columns {
		if col.IsPrimaryKey {
			pk = append(pk, col.Name)
		}
	}
	pkStr := ""
	if len(pk) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(pk, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s AS %s%s\n", qualified(table.Schema, table.Name), table.InterfaceName, pkStr)

	for _, col := range table.Columns {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", f.formatColumn(col))
	}
}

func (f *TextFormatter) formatEnum(enum schema.Enum) {
	keys := make([]string, 0, len(enum.Values))
	for _, v := range enum.Values {
		keys = append(keys, v.ConvertedKey)
	}
	_, _ = fmt.Fprintf(f.writer, "ENUM %s AS %s\n  %s\n", qualified(enum.Schema, enum.Name), enum.ConvertedName, strings.Join(keys, "|"))
}

func (f *TextFormatter) formatColumn(col schema.Column) string {
	name := col.PropertyName
	if col.Optional {
		name += "?"
	}
	parts := []string{name + ":", col.Type}

	if !col.Nullable {
		parts = append(parts, "NOT NULL")
	}
	if col.DefaultValue != nil {
		parts = append(parts, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}

	return strings.Join(parts, " ")
}

func qualified(schemaName, name string) string {
	if schemaName == "" {
		return name
	}
	return schemaName + "." + name
}
