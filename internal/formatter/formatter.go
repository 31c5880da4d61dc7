// Package formatter renders the normalized database model as TypeScript,
// markdown, compact text or JSON.
package formatter

import (
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// Output formats
const (
	FormatTypeScript = "typescript"
	FormatMarkdown   = "markdown"
	FormatText       = "text"
	FormatJSON       = "json"
)

// ErrUnknownFormat is returned for an output format with no formatter.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter writes a database model to its writer
type Formatter interface {
	Format(db *schema.Database) error
}

// New returns the formatter for format writing to w. tmpl is only used
// by the TypeScript formatter; nil selects the default template.
func New(format string, w io.Writer, cfg *config.Config, tmpl *template.Template) (Formatter, error) {
	switch format {
	case FormatTypeScript, "":
		if tmpl == nil {
			var err error
			if tmpl, err = DefaultTemplate(); err != nil {
				return nil, err
			}
		}
		return NewTypeScriptFormatter(w, tmpl, cfg), nil
	case FormatMarkdown:
		return NewMarkdownFormatter(w), nil
	case FormatText:
		return NewTextFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be typescript, markdown, text or json)", ErrUnknownFormat, format)
	}
}

// Extension returns the file extension for format, including the dot
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	case FormatJSON:
		return ".json"
	default:
		return ".ts"
	}
}
