package db

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

// Adapter reads raw catalog records for one dialect
type Adapter interface {
	// AllTables lists base tables. An empty schemas list means every
	// non-system schema the dialect exposes.
	AllTables(ctx context.Context, db *sql.DB, schemas []string) ([]schema.TableDefinition, error)

	// AllColumns lists the columns of one table in source order.
	AllColumns(ctx context.Context, db *sql.DB, cfg *config.Config, table, schemaName string) ([]schema.ColumnDefinition, error)

	// AllEnums lists native enum types. Dialects without them return nil.
	AllEnums(ctx context.Context, db *sql.DB, cfg *config.Config) ([]schema.EnumDefinition, error)

	// QuoteIdentifier quotes a table or column name for use in a query.
	QuoteIdentifier(name string) string
}

// Opener opens a connection from a data source name
type Opener func(ctx context.Context, dsn string) (*sql.DB, error)

type dialect struct {
	adapter Adapter
	open    Opener
}

var dialects = map[string]dialect{
	config.DialectPostgres: {adapter: &PostgresAdapter{}, open: OpenPostgres},
	config.DialectMySQL:    {adapter: &MySQLAdapter{}, open: OpenMySQL},
	config.DialectMSSQL:    {adapter: &MSSQLAdapter{}, open: OpenMSSQL},
	config.DialectSQLite:   {adapter: &SQLiteAdapter{}, open: OpenSQLite},
}

// Ensure interface implementation
var (
	_ Adapter = (*PostgresAdapter)(nil)
	_ Adapter = (*MySQLAdapter)(nil)
	_ Adapter = (*MSSQLAdapter)(nil)
	_ Adapter = (*SQLiteAdapter)(nil)
)

// AdapterFor returns the adapter registered for a client name or alias
func AdapterFor(client string) (Adapter, error) {
	d, err := lookupDialect(client)
	if err != nil {
		return nil, err
	}
	return d.adapter, nil
}

// Open connects to the database named by cfg and checks the connection.
// The caller owns the returned handle.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	d, err := lookupDialect(cfg.Client)
	if err != nil {
		return nil, err
	}
	return d.open(ctx, cfg.Connection)
}

func lookupDialect(client string) (dialect, error) {
	name, err := config.NormalizeDialect(client)
	if err != nil {
		return dialect{}, err
	}
	d, ok := dialects[name]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", config.ErrUnknownDialect, client)
	}
	return d, nil
}

// ping verifies a freshly opened handle, closing it on failure
func ping(ctx context.Context, db *sql.DB) (*sql.DB, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// filterSchemas keeps tables whose schema is listed. An empty list keeps
// everything.
func filterSchemas(tables []schema.TableDefinition, schemas []string) []schema.TableDefinition {
	if len(schemas) == 0 {
		return tables
	}
	var out []schema.TableDefinition
	for _, t := range tables {
		if schemaSelected(t.Schema, schemas) {
			out = append(out, t)
		}
	}
	return out
}

func schemaSelected(name string, schemas []string) bool {
	return len(schemas) == 0 || slices.Contains(schemas, name)
}
