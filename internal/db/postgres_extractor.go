package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// PostgresAdapter reads PostgreSQL catalogs
type PostgresAdapter struct{}

// AllTables lists base tables outside the system schemas
func (a *PostgresAdapter) AllTables(ctx context.Context, db *sql.DB, schemas []string) ([]schema.TableDefinition, error) {
	query := `
		SELECT
			t.table_name,
			t.table_schema,
			COALESCE(obj_description(c.oid, 'pg_class'), '')
		FROM information_schema.tables t
		JOIN pg_catalog.pg_namespace n ON n.nspname = t.table_schema
		JOIN pg_catalog.pg_class c ON c.relname = t.table_name AND c.relnamespace = n.oid
		WHERE t.table_type = 'BASE TABLE'
			AND t.table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY t.table_schema, t.table_name
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

// AllColumns lists the columns of a table. EnumSchema is udt_schema for
// every column, enum or not.
func (a *PostgresAdapter) AllColumns(ctx context.Context, db *sql.DB, cfg *config.Config, table, schemaName string) ([]schema.ColumnDefinition, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.udt_name,
			c.udt_schema,
			c.is_nullable,
			c.column_default,
			(c.is_identity = 'YES' OR c.is_generated = 'ALWAYS') AS is_generated,
			EXISTS (
				SELECT 1 FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage kcu
					ON tc.constraint_name = kcu.constraint_name
					AND tc.table_schema = kcu.table_schema
					AND tc.table_name = kcu.table_name
				WHERE tc.constraint_type = 'PRIMARY KEY'
					AND tc.table_schema = c.table_schema
					AND tc.table_name = c.table_name
					AND kcu.column_name = c.column_name
			) AS is_primary_key,
			EXISTS (
				SELECT 1 FROM pg_catalog.pg_type et
				JOIN pg_catalog.pg_namespace en ON en.oid = et.typnamespace
				WHERE et.typtype = 'e'
					AND et.typname = CASE
						WHEN c.data_type = 'ARRAY' THEN substring(c.udt_name FROM 2)
						ELSE c.udt_name
					END
					AND en.nspname = c.udt_schema
			) AS is_enum,
			COALESCE(col_description(pc.oid, pa.attnum), '') AS comment
		FROM information_schema.columns c
		LEFT JOIN pg_catalog.pg_namespace pn ON pn.nspname = c.table_schema
		LEFT JOIN pg_catalog.pg_class pc ON pc.relname = c.table_name AND pc.relnamespace = pn.oid
		LEFT JOIN pg_catalog.pg_attribute pa ON pa.attrelid = pc.oid AND pa.attname = c.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	rows, err := db.QueryContext(ctx, query, schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.ColumnDefinition
	for rows.Next() {
		var col schema.ColumnDefinition
		var dataType, udtName, nullable string
		var defaultVal sql.NullString
		var generated bool

		if err := rows.Scan(&col.Name, &dataType, &udtName, &col.EnumSchema, &nullable, &defaultVal,
			&generated, &col.IsPrimaryKey, &col.IsEnum, &col.Comment); err != nil {
			return nil, err
		}

		col.Type = normalizePostgresType(dataType, udtName)
		col.Nullable = nullable == "YES"
		if defaultVal.Valid {
			col.DefaultValue = &defaultVal.String
		}
		col.Optional = col.Nullable || defaultVal.Valid || generated

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// AllEnums lists native enum types, one definition per label
func (a *PostgresAdapter) AllEnums(ctx context.Context, db *sql.DB, cfg *config.Config) ([]schema.EnumDefinition, error) {
	query := `
		SELECT n.nspname, t.typname, e.enumlabel
		FROM pg_catalog.pg_type t
		JOIN pg_catalog.pg_enum e ON t.oid = e.enumtypid
		JOIN pg_catalog.pg_namespace n ON n.oid = t.typnamespace
		ORDER BY n.nspname, t.typname, e.enumsortorder
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enums []schema.EnumDefinition
	for rows.Next() {
		var schemaName, name, label string
		if err := rows.Scan(&schemaName, &name, &label); err != nil {
			return nil, err
		}
		if !schemaSelected(schemaName, cfg.Schemas) {
			continue
		}
		enums = append(enums, schema.EnumDefinition{
			Name:   name,
			Schema: schemaName,
			Values: map[string]any{label: label},
		})
	}

	return enums, rows.Err()
}

// QuoteIdentifier quotes name with double quotes
func (a *PostgresAdapter) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// normalizePostgresType reports user-defined types by name and arrays as
// element[] ("_int4" becomes "int4[]")
func normalizePostgresType(dataType, udtName string) string {
	switch dataType {
	case "ARRAY":
		if elem, ok := strings.CutPrefix(udtName, "_"); ok {
			return elem + "[]"
		}
		return "array"
	case "USER-DEFINED":
		return udtName
	default:
		if udtName != "" {
			return udtName
		}
		return dataType
	}
}
