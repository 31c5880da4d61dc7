package typemap

// FallbackType is emitted for raw types no map covers
const FallbackType = "any"

// DefaultTypeMap maps TypeScript types to the raw database type names they
// cover across the supported dialects
var DefaultTypeMap = map[string][]string{
	"number": {
		"int", "integer", "smallint", "mediumint", "bigint", "tinyint",
		"int2", "int4", "int8", "decimal", "numeric", "float", "float4",
		"float8", "double", "double precision", "real", "money", "smallmoney",
		"serial", "smallserial", "bigserial", "year", "oid",
	},
	"string": {
		"char", "character", "character varying", "varchar", "nvarchar",
		"nchar", "text", "tinytext", "mediumtext", "longtext", "ntext",
		"citext", "uuid", "uniqueidentifier", "time", "timetz",
		"time with time zone", "time without time zone", "interval", "inet",
		"cidr", "macaddr", "xml", "enum", "set", "name", "bpchar",
	},
	"Date": {
		"date", "datetime", "datetime2", "smalldatetime", "datetimeoffset",
		"timestamp", "timestamptz", "timestamp with time zone",
		"timestamp without time zone",
	},
	"boolean": {"bool", "boolean", "bit"},
	"Object":  {"json", "jsonb"},
	"Buffer": {
		"bytea", "blob", "tinyblob", "mediumblob", "longblob", "binary",
		"varbinary", "image",
	},
}
