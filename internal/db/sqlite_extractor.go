package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// SQLiteSchema is the schema name reported for every SQLite table
const SQLiteSchema = "main"

// SQLiteAdapter reads SQLite catalogs
type SQLiteAdapter struct{}

// AllTables lists user tables. Internal sqlite_ tables are skipped.
func (a *SQLiteAdapter) AllTables(ctx context.Context, db *sql.DB, schemas []string) ([]schema.TableDefinition, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []schema.TableDefinition
	for rows.Next() {
		t := schema.TableDefinition{Schema: SQLiteSchema}
		if err := rows.Scan(&t.Name); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return filterSchemas(tables, schemas), nil
}

// AllColumns lists the columns of a table. An INTEGER PRIMARY KEY aliases
// the rowid and is optional.
func (a *SQLiteAdapter) AllColumns(ctx context.Context, db *sql.DB, cfg *config.Config, table, schemaName string) ([]schema.ColumnDefinition, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", a.QuoteIdentifier(table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	var pkCount int
	rowid := -1

	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var defaultVal sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, err
		}

		col := schema.ColumnDefinition{
			Name:         name,
			Type:         strings.ToLower(colType),
			Nullable:     notNull == 0,
			IsPrimaryKey: pk > 0,
		}
		if defaultVal.Valid {
			col.DefaultValue = &defaultVal.String
		}
		col.Optional = col.Nullable || defaultVal.Valid

		if pk > 0 {
			pkCount++
			if col.Type == "integer" {
				rowid = len(columns)
			}
		}

		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if pkCount == 1 && rowid >= 0 {
		columns[rowid].Optional = true
	}

	return columns, nil
}

// AllEnums returns nil. SQLite has no enum types.
func (a *SQLiteAdapter) AllEnums(ctx context.Context, db *sql.DB, cfg *config.Config) ([]schema.EnumDefinition, error) {
	return nil, nil
}

// QuoteIdentifier quotes name with double quotes
func (a *SQLiteAdapter) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
