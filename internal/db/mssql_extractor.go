package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// MSSQLAdapter reads SQL Server catalogs. Comments come from the
// MS_Description extended property.
type MSSQLAdapter struct{}

// AllTables lists base tables in every schema, or in schemas when given
func (a *MSSQLAdapter) AllTables(ctx context.Context, db *sql.DB, schemas []string) ([]schema.TableDefinition, error) {
	query := `
		SELECT
			t.TABLE_NAME,
			t.TABLE_SCHEMA,
			COALESCE(CAST(ep.value AS NVARCHAR(MAX)), '')
		FROM INFORMATION_SCHEMA.TABLES t
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = OBJECT_ID(QUOTENAME(t.TABLE_SCHEMA) + '.' + QUOTENAME(t.TABLE_NAME))
			AND ep.minor_id = 0
			AND ep.name = 'MS_Description'
		WHERE t.TABLE_TYPE = 'BASE TABLE'
		ORDER BY t.TABLE_SCHEMA, t.TABLE_NAME
	`

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

// AllColumns lists the columns of a table. Identity columns are optional.
func (a *MSSQLAdapter) AllColumns(ctx context.Context, db *sql.DB, cfg *config.Config, table, schemaName string) ([]schema.ColumnDefinition, error) {
	query := `
		SELECT
			c.COLUMN_NAME,
			c.DATA_TYPE,
			c.IS_NULLABLE,
			c.COLUMN_DEFAULT,
			COALESCE(COLUMNPROPERTY(OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME)), c.COLUMN_NAME, 'IsIdentity'), 0),
			CASE WHEN pk.COLUMN_NAME IS NULL THEN 0 ELSE 1 END,
			COALESCE(CAST(ep.value AS NVARCHAR(MAX)), '')
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN (
			SELECT kcu.TABLE_SCHEMA, kcu.TABLE_NAME, kcu.COLUMN_NAME
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
				ON tc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME
				AND tc.TABLE_SCHEMA = kcu.TABLE_SCHEMA
			WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
		) pk
			ON pk.TABLE_SCHEMA = c.TABLE_SCHEMA
			AND pk.TABLE_NAME = c.TABLE_NAME
			AND pk.COLUMN_NAME = c.COLUMN_NAME
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME))
			AND ep.minor_id = COLUMNPROPERTY(ep.major_id, c.COLUMN_NAME, 'ColumnId')
			AND ep.name = 'MS_Description'
		WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
		ORDER BY c.ORDINAL_POSITION
	`

	rows, err := db.QueryContext(ctx, query, schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var col schema.ColumnDefinition
		var nullable string
		var defaultVal sql.NullString
		var identity, primaryKey int

		if err := rows.Scan(&col.Name, &col.Type, &nullable, &defaultVal,
			&identity, &primaryKey, &col.Comment); err != nil {
			return nil, err
		}

		col.Type = strings.ToLower(col.Type)
		col.Nullable = nullable == "YES"
		col.IsPrimaryKey = primaryKey == 1
		if defaultVal.Valid {
			col.DefaultValue = &defaultVal.String
		}
		col.Optional = col.Nullable || defaultVal.Valid || identity == 1

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// AllEnums returns nil. SQL Server has no enum types.
func (a *MSSQLAdapter) AllEnums(ctx context.Context, db *sql.DB, cfg *config.Config) ([]schema.EnumDefinition, error) {
	return nil, nil
}

// QuoteIdentifier quotes name with square brackets
func (a *MSSQLAdapter) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}
