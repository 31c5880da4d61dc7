package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// TableEnums reads every table configured under tableEnums and turns its
// rows into an enum named after the table. Keys are schema.table; a key
// without a dot names a table in the default schema.
func TableEnums(ctx context.Context, db *sql.DB, adapter Adapter, cfg *config.Config) ([]schema.EnumDefinition, error) {
	names := make([]string, 0, len(cfg.TableEnums))
	for name := range cfg.TableEnums {
		names = append(names, name)
	}
	sort.Strings(names)

	enums := make([]schema.EnumDefinition, 0, len(names))
	for _, name := range names {
		def, err := tableEnum(ctx, db, adapter, name, cfg.TableEnums[name])
		if err != nil {
			return nil, fmt.Errorf("failed to read table enum %s: %w", name, err)
		}
		enums = append(enums, def)
	}
	return enums, nil
}

func tableEnum(ctx context.Context, db *sql.DB, adapter Adapter, name string, te config.TableEnum) (schema.EnumDefinition, error) {
	schemaName, table, found := strings.Cut(name, ".")
	if !found {
		schemaName, table = "", name
	}

	from := adapter.QuoteIdentifier(table)
	if schemaName != "" {
		from = adapter.QuoteIdentifier(schemaName) + "." + from
	}
	query := fmt.Sprintf("SELECT %s, %s FROM %s",
		adapter.QuoteIdentifier(te.Key), adapter.QuoteIdentifier(te.Value), from)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return schema.EnumDefinition{}, err
	}
	defer rows.Close()

	def := schema.EnumDefinition{Name: table, Schema: schemaName, Values: make(map[string]any)}
	for rows.Next() {
		var key sql.NullString
		var value any
		if err := rows.Scan(&key, &value); err != nil {
			return schema.EnumDefinition{}, err
		}
		if !key.Valid {
			continue
		}
		def.Values[key.String] = enumValue(value)
	}

	return def, rows.Err()
}

// enumValue normalizes a scanned value. Drivers hand text back as bytes.
func enumValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case nil, string, int64, float64, bool:
		return t
	default:
		return fmt.Sprint(t)
	}
}
