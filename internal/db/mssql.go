package db

import (
	"context"
	"database/sql"
	"fmt"

	mssql "github.com/microsoft/go-mssqldb"
)

// OpenMSSQL opens a SQL Server connection from a sqlserver:// URL or an
// ADO-style connection string
func OpenMSSQL(ctx context.Context, dsn string) (*sql.DB, error) {
	connector, err := mssql.NewConnector(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SQL Server connection string: %w", err)
	}
	return ping(ctx, sql.OpenDB(connector))
}
