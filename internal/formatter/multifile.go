package formatter

import (
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/spf13/afero"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// MultiFileFormatter writes one file per schema into a directory, plus an
// overview (index.ts for TypeScript) listing them
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string

	fs      afero.Fs
	cfg     *config.Config
	tmpl    *template.Template
	written []string
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(fs afero.Fs, outputDir, format string, cfg *config.Config, tmpl *template.Template) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
		fs:           fs,
		cfg:          cfg,
		tmpl:         tmpl,
	}
}

// Format writes the schema files and the overview
func (f *MultiFileFormatter) Format(db *schema.Database) error {
	if err := f.fs.MkdirAll(f.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f.written = nil
	names := make([]string, 0, len(db.Schemas))
	for _, s := range db.Schemas {
		name := SchemaFileName(s)
		part := &schema.Database{Schemas: []schema.Schema{s}, Custom: db.Custom}
		if err := f.writeFile(name+Extension(f.OutputFormat), part); err != nil {
			return fmt.Errorf("failed to write schema file for %s: %w", displaySchema(s.Name), err)
		}
		names = append(names, name)
	}

	if err := f.writeOverview(names); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}
	return nil
}

// Written lists the paths written by the last Format call
func (f *MultiFileFormatter) Written() []string {
	return f.written
}

// SchemaFileName returns the base file name for a schema
func SchemaFileName(s schema.Schema) string {
	if s.Namespace == "" {
		return "default"
	}
	return s.Namespace
}

func (f *MultiFileFormatter) writeFile(name string, db *schema.Database) error {
	path := filepath.Join(f.OutputDir, name)
	file, err := f.fs.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	formatter, err := New(f.OutputFormat, file, f.cfg, f.tmpl)
	if err != nil {
		return err
	}
	if err := formatter.Format(db); err != nil {
		return err
	}

	f.written = append(f.written, path)
	return nil
}

func (f *MultiFileFormatter) writeOverview(names []string) error {
	var filename string
	switch f.OutputFormat {
	case FormatJSON:
		return nil
	case FormatMarkdown, FormatText:
		filename = "_overview" + Extension(f.OutputFormat)
	default:
		filename = "index.ts"
	}

	path := filepath.Join(f.OutputDir, filename)
	file, err := f.fs.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	switch f.OutputFormat {
	case FormatMarkdown:
		_, _ = fmt.Fprintf(file, "# Schema Overview\n\n")
		_, _ = fmt.Fprintf(file, "Each schema has a corresponding file: `<schema>%s`\n\n", Extension(f.OutputFormat))
		for _, name := range names {
			_, _ = fmt.Fprintf(file, "- [%s](%s%s)\n", name, name, Extension(f.OutputFormat))
		}
	case FormatText:
		_, _ = fmt.Fprintf(file, "SCHEMA OVERVIEW\n")
		for _, name := range names {
			_, _ = fmt.Fprintf(file, "%s%s\n", name, Extension(f.OutputFormat))
		}
	default:
		for _, name := range names {
			_, _ = fmt.Fprintf(file, "export * from './%s';\n", name)
		}
	}

	f.written = append(f.written, path)
	return nil
}
