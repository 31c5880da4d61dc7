package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// MySQLAdapter reads MySQL and MariaDB catalogs. Schemas are databases.
type MySQLAdapter struct{}

// AllTables lists base tables. Without schemas only the connection's
// current database is read.
func (a *MySQLAdapter) AllTables(ctx context.Context, db *sql.DB, schemas []string) ([]schema.TableDefinition, error) {
	query := `
		SELECT table_name, table_schema, COALESCE(table_comment, '')
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'
			AND table_schema NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
		ORDER BY table_schema, table_name
	`
	if len(schemas) == 0 {
		query = `
			SELECT table_name, table_schema, COALESCE(table_comment, '')
			FROM information_schema.tables
			WHERE table_type = 'BASE TABLE' AND table_schema = DATABASE()
			ORDER BY table_name
		`
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []schema.TableDefinition
	for rows.Next() {
		var t schema.TableDefinition
		if err := rows.Scan(&t.Name, &t.Schema, &t.Comment); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return filterSchemas(tables, schemas), nil
}

// AllColumns lists the columns of a table. enum(...) columns report their
// members as StringEnumValues.
func (a *MySQLAdapter) AllColumns(ctx context.Context, db *sql.DB, cfg *config.Config, table, schemaName string) ([]schema.ColumnDefinition, error) {
	query := `
		SELECT
			column_name,
			data_type,
			column_type,
			is_nullable,
			column_default,
			extra,
			column_key,
			COALESCE(column_comment, '')
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := db.QueryContext(ctx, query, schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var col schema.ColumnDefinition
		var dataType, columnType, nullable, extra, columnKey string
		var defaultVal sql.NullString

		if err := rows.Scan(&col.Name, &dataType, &columnType, &nullable, &defaultVal,
			&extra, &columnKey, &col.Comment); err != nil {
			return nil, err
		}

		col.Type = strings.ToLower(dataType)
		col.Nullable = nullable == "YES"
		col.IsPrimaryKey = columnKey == "PRI"
		if defaultVal.Valid {
			col.DefaultValue = &defaultVal.String
		}
		col.Optional = col.Nullable || defaultVal.Valid || isGeneratedMySQL(extra)

		if col.Type == "enum" {
			values, err := parseEnumValues(columnType)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			col.StringEnumValues = values
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// AllEnums returns nil. MySQL enums are column types, not named types.
func (a *MySQLAdapter) AllEnums(ctx context.Context, db *sql.DB, cfg *config.Config) ([]schema.EnumDefinition, error) {
	return nil, nil
}

// QuoteIdentifier quotes name with backticks
func (a *MySQLAdapter) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func isGeneratedMySQL(extra string) bool {
	extra = strings.ToLower(extra)
	// "generated" also covers DEFAULT_GENERATED
	return strings.Contains(extra, "auto_increment") || strings.Contains(extra, "generated")
}

// parseEnumValues parses the members of a column type such as
// enum('a','b','it''s'). Quotes inside members are doubled.
func parseEnumValues(columnType string) ([]string, error) {
	start := strings.Index(columnType, "(")
	end := strings.LastIndex(columnType, ")")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("invalid enum type format: %s", columnType)
	}

	list := columnType[start+1 : end]
	var values []string
	var current strings.Builder
	inQuote := false

	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case c == '\'' && !inQuote:
			inQuote = true
			current.Reset()
		case c == '\'' && inQuote:
			if i+1 < len(list) && list[i+1] == '\'' {
				current.WriteByte('\'')
				i++
				continue
			}
			inQuote = false
			values = append(values, current.String())
		case c == '\\' && inQuote && i+1 < len(list):
			i++
			current.WriteByte(list[i])
		case inQuote:
			current.WriteByte(c)
		}
	}

	if inQuote {
		return nil, fmt.Errorf("unterminated enum value: %s", columnType)
	}
	return values, nil
}
