package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tordrt/sqlts/internal/schema"
)

// JSONFormatter writes the model as indented JSON
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// Format encodes db
func (f *JSONFormatter) Format(db *schema.Database) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(db); err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}
	return nil
}
