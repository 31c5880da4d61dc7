package db

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/sourcegraph/conc/iter"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/debug"
	"github.com/tordrt/sqlts/internal/naming"
	"github.com/tordrt/sqlts/internal/schema"
	"github.com/tordrt/sqlts/internal/typemap"
)

// Extractor builds the normalized database model from an adapter's raw
// catalog records
type Extractor struct {
	adapter  Adapter
	db       *sql.DB
	cfg      *config.Config
	resolver *typemap.Resolver
	extends  naming.QualifiedMap[string]
	props    naming.QualifiedMap[[]string]
}

// NewExtractor creates an extractor reading through adapter over db
func NewExtractor(adapter Adapter, db *sql.DB, cfg *config.Config) *Extractor {
	return &Extractor{
		adapter:  adapter,
		db:       db,
		cfg:      cfg,
		resolver: typemap.NewResolver(cfg),
		extends:  naming.NewQualifiedMap(cfg.Extends),
		props:    naming.NewQualifiedMap(cfg.AdditionalProperties),
	}
}

// Extract opens the connection described by cfg, builds the model and
// closes the connection again
func Extract(ctx context.Context, cfg *config.Config) (*schema.Database, error) {
	if err := cfg.RequireConnection(); err != nil {
		return nil, err
	}

	adapter, err := AdapterFor(cfg.Client)
	if err != nil {
		return nil, err
	}

	conn, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	return NewExtractor(adapter, conn, cfg).ExtractDatabase(ctx)
}

// ExtractFrom builds the model over a connection owned by the caller.
// The connection is left open.
func ExtractFrom(ctx context.Context, conn *sql.DB, cfg *config.Config) (*schema.Database, error) {
	adapter, err := AdapterFor(cfg.Client)
	if err != nil {
		return nil, err
	}
	return NewExtractor(adapter, conn, cfg).ExtractDatabase(ctx)
}

// ExtractDatabase reads tables, columns and enums and assembles them into
// schemas
func (e *Extractor) ExtractDatabase(ctx context.Context) (*schema.Database, error) {
	defs, err := e.adapter.AllTables(ctx, e.db, e.cfg.Schemas)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	defs = FilterTables(defs, e.cfg.Tables, e.cfg.ExcludedTables)
	debug.Debug("tables selected", "count", len(defs))

	tables, err := iter.MapErr(defs, func(def *schema.TableDefinition) (schema.Table, error) {
		return e.extractTable(ctx, *def)
	})
	if err != nil {
		return nil, err
	}
	SortTables(tables)

	enums, err := e.extractEnums(ctx)
	if err != nil {
		return nil, err
	}

	database := &schema.Database{
		Schemas: GroupSchemas(tables, enums),
		Custom:  schema.CloneCustom(e.cfg.Custom),
	}
	debug.Info("database extracted", "schemas", len(database.Schemas), "tables", len(tables), "enums", len(enums))

	return database, nil
}

// extractTable extracts all information for a single table
func (e *Extractor) extractTable(ctx context.Context, def schema.TableDefinition) (schema.Table, error) {
	fullName := naming.FullTableName(def.Name, def.Schema)

	colDefs, err := e.adapter.AllColumns(ctx, e.db, e.cfg, def.Name, def.Schema)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to extract columns of %s: %w", fullName, err)
	}

	table := schema.Table{
		Name:          def.Name,
		Schema:        def.Schema,
		Comment:       def.Comment,
		InterfaceName: naming.InterfaceName(def.Name, e.cfg),
		Columns:       make([]schema.Column, 0, len(colDefs)),
	}
	if ext, ok := e.extends.Get(fullName); ok {
		table.Extends = ext
	}
	if props, ok := e.props.Get(fullName); ok {
		table.AdditionalProperties = slices.Clone(props)
	}

	for _, cd := range colDefs {
		table.Columns = append(table.Columns, e.column(cd, def))
	}
	if e.cfg.ColumnSortOrder == config.SortAlphabetical {
		sort.SliceStable(table.Columns, func(i, j int) bool {
			return table.Columns[i].Name < table.Columns[j].Name
		})
	}

	return table, nil
}

// column normalizes one column definition. EnumSchema survives only on
// enum reference columns.
func (e *Extractor) column(def schema.ColumnDefinition, table schema.TableDefinition) schema.Column {
	col := schema.Column{
		Name:         def.Name,
		PropertyName: naming.PropertyName(def.Name, e.cfg),
		RawType:      def.Type,
		Nullable:     def.Nullable,
		IsPrimaryKey: def.IsPrimaryKey,
		DefaultValue: def.DefaultValue,
		Comment:      def.Comment,
	}

	switch {
	case def.IsEnum:
		col.Kind = schema.KindNumericEnum
		col.EnumSchema = def.EnumSchema
	case len(def.StringEnumValues) > 0:
		col.Kind = schema.KindStringEnum
		col.StringEnumValues = slices.Clone(def.StringEnumValues)
	default:
		col.Kind = schema.KindStandard
	}

	col.Type = e.resolver.ConvertType(col, table.Name, table.Schema)
	col.Optional = e.resolver.Optionality(def.Optional, naming.FullColumnName(table.Name, table.Schema, def.Name))
	return col
}

// extractEnums merges native enums and appends table-backed ones
func (e *Extractor) extractEnums(ctx context.Context) ([]schema.Enum, error) {
	native, err := e.adapter.AllEnums(ctx, e.db, e.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get enums: %w", err)
	}

	fromTables, err := TableEnums(ctx, e.db, e.adapter, e.cfg)
	if err != nil {
		return nil, err
	}

	defs := append(MergeEnums(native), fromTables...)
	enums := make([]schema.Enum, 0, len(defs))
	for _, def := range defs {
		enums = append(enums, BuildEnum(def, e.cfg))
	}
	SortEnums(enums)

	return enums, nil
}

// FilterTables applies the include list, when non-empty, and then the
// exclude list. Both hold schema.table identifiers.
func FilterTables(defs []schema.TableDefinition, include, exclude []string) []schema.TableDefinition {
	var out []schema.TableDefinition
	for _, def := range defs {
		name := naming.FullTableName(def.Name, def.Schema)
		if len(include) > 0 && !slices.Contains(include, name) {
			continue
		}
		if slices.Contains(exclude, name) {
			continue
		}
		out = append(out, def)
	}
	return out
}

// MergeEnums collapses definitions sharing schema and name into one,
// keeping first-seen order
func MergeEnums(defs []schema.EnumDefinition) []schema.EnumDefinition {
	var out []schema.EnumDefinition
	index := make(map[string]int)
	for _, def := range defs {
		key := naming.FullTableName(def.Name, def.Schema)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, schema.EnumDefinition{Name: def.Name, Schema: def.Schema, Values: make(map[string]any)})
			i = len(out) - 1
		}
		maps.Copy(out[i].Values, def.Values)
	}
	return out
}

// BuildEnum converts a definition into an enum with values sorted by key
func BuildEnum(def schema.EnumDefinition, cfg *config.Config) schema.Enum {
	keys := slices.Sorted(maps.Keys(def.Values))

	enum := schema.Enum{
		Name:          def.Name,
		Schema:        def.Schema,
		ConvertedName: naming.EnumName(def.Name, cfg),
		Values:        make([]schema.EnumValue, 0, len(keys)),
	}
	for _, k := range keys {
		enum.Values = append(enum.Values, schema.EnumValue{
			Key:          k,
			ConvertedKey: naming.EnumKey(k, cfg),
			Value:        def.Values[k],
		})
	}
	return enum
}

// SortTables orders tables by name, then schema
func SortTables(tables []schema.Table) {
	sort.SliceStable(tables, func(i, j int) bool {
		if tables[i].Name != tables[j].Name {
			return tables[i].Name < tables[j].Name
		}
		return tables[i].Schema < tables[j].Schema
	})
}

// SortEnums orders enums by converted name, then schema
func SortEnums(enums []schema.Enum) {
	sort.SliceStable(enums, func(i, j int) bool {
		if enums[i].ConvertedName != enums[j].ConvertedName {
			return enums[i].ConvertedName < enums[j].ConvertedName
		}
		return enums[i].Schema < enums[j].Schema
	})
}

// GroupSchemas buckets tables and enums by schema name. Buckets appear in
// first-seen order, tables before enums.
func GroupSchemas(tables []schema.Table, enums []schema.Enum) []schema.Schema {
	var schemas []schema.Schema
	index := make(map[string]int)

	bucket := func(name string) *schema.Schema {
		i, ok := index[name]
		if !ok {
			i = len(schemas)
			index[name] = i
			schemas = append(schemas, schema.Schema{
				Name:      name,
				Namespace: naming.SchemaName(name),
				Tables:    []schema.Table{},
				Enums:     []schema.Enum{},
			})
		}
		return &schemas[i]
	}

	for _, t := range tables {
		s := bucket(t.Schema)
		s.Tables = append(s.Tables, t)
	}
	for _, en := range enums {
		s := bucket(en.Schema)
		s.Enums = append(s.Enums, en)
	}

	return schemas
}
