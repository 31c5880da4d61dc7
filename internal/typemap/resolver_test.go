package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

func newConfig(setup func(*config.Config)) *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	if setup != nil {
		setup(cfg)
	}
	return cfg
}

func TestDefaultTypeMapIsExact(t *testing.T) {
	r := NewResolver(newConfig(nil))

	for output, rawTypes := range DefaultTypeMap {
		for _, raw := range rawTypes {
			assert.Equal(t, output, r.ConvertStandardType(raw, "public.t.c"), "raw type %q", raw)
		}
	}
}

func TestConvertStandardType(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*config.Config)
		rawType  string
		fullName string
		want     string
	}{
		{
			name:     "default mapping",
			rawType:  "varchar",
			fullName: "public.users.name",
			want:     "string",
		},
		{
			name:     "modifiers and case ignored",
			rawType:  "VARCHAR(255)",
			fullName: "public.users.name",
			want:     "string",
		},
		{
			name:     "precision inside multi-word type",
			rawType:  "timestamp(6) with time zone",
			fullName: "public.users.created_at",
			want:     "Date",
		},
		{
			name:     "unknown type falls back",
			rawType:  "geography",
			fullName: "public.places.location",
			want:     FallbackType,
		},
		{
			name: "user map beats default",
			setup: func(c *config.Config) {
				c.TypeMap = map[string][]string{"bigint": {"int8", "bigint"}}
			},
			rawType:  "int8",
			fullName: "public.users.id",
			want:     "bigint",
		},
		{
			name: "user map adds new raw type",
			setup: func(c *config.Config) {
				c.TypeMap = map[string][]string{"GeoJSON": {"geography"}}
			},
			rawType:  "geography",
			fullName: "public.places.location",
			want:     "GeoJSON",
		},
		{
			name: "override wins over maps",
			setup: func(c *config.Config) {
				c.TypeMap = map[string][]string{"bigint": {"int8"}}
				c.TypeOverrides = map[string]string{"public.users.id": "UserId"}
			},
			rawType:  "int8",
			fullName: "public.users.id",
			want:     "UserId",
		},
		{
			name: "override matches case-insensitively",
			setup: func(c *config.Config) {
				c.TypeOverrides = map[string]string{"public.users.userid": "UserId"}
			},
			rawType:  "int4",
			fullName: "public.Users.UserId",
			want:     "UserId",
		},
		{
			name:     "array of scalars",
			rawType:  "int4[]",
			fullName: "public.users.scores",
			want:     "number[]",
		},
		{
			name: "array of union",
			setup: func(c *config.Config) {
				c.TypeMap = map[string][]string{"string | null": {"text"}}
			},
			rawType:  "text[]",
			fullName: "public.users.tags",
			want:     "(string | null)[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(newConfig(tt.setup))
			assert.Equal(t, tt.want, r.ConvertStandardType(tt.rawType, tt.fullName))
		})
	}
}

func TestOverrideIgnoresRawType(t *testing.T) {
	r := NewResolver(newConfig(func(c *config.Config) {
		c.TypeOverrides = map[string]string{"public.users.meta": "UserMeta"}
	}))

	for _, raw := range []string{"jsonb", "text", "int4", "something_unknown", ""} {
		assert.Equal(t, "UserMeta", r.ConvertStandardType(raw, "public.users.meta"))
	}
}

func TestConvertType(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*config.Config)
		col   schema.Column
		want  string
	}{
		{
			name: "string enum",
			col: schema.Column{
				Name:             "status",
				Kind:             schema.KindStringEnum,
				StringEnumValues: []string{"value1", "value2"},
			},
			want: "'value1' | 'value2'",
		},
		{
			name: "string enum escapes quotes",
			col: schema.Column{
				Name:             "label",
				Kind:             schema.KindStringEnum,
				StringEnumValues: []string{"it's"},
			},
			want: `'it\'s'`,
		},
		{
			name: "enum reference",
			setup: func(c *config.Config) {
				c.EnumNameCasing = "pascal"
			},
			col: schema.Column{
				Name:       "mood",
				RawType:    "mood_type",
				Kind:       schema.KindNumericEnum,
				EnumSchema: "public",
			},
			want: "MoodType",
		},
		{
			name: "enum reference with namespace",
			setup: func(c *config.Config) {
				c.EnumNameCasing = "pascal"
				c.SchemaAsNamespace = true
			},
			col: schema.Column{
				Name:       "mood",
				RawType:    "mood_type",
				Kind:       schema.KindNumericEnum,
				EnumSchema: "my-schema",
			},
			want: "myschema.MoodType",
		},
		{
			name: "enum array reference",
			setup: func(c *config.Config) {
				c.EnumNameCasing = "pascal"
			},
			col: schema.Column{
				Name:       "moods",
				RawType:    "mood_type[]",
				Kind:       schema.KindNumericEnum,
				EnumSchema: "public",
			},
			want: "MoodType[]",
		},
		{
			name: "enum array reference with namespace",
			setup: func(c *config.Config) {
				c.SchemaAsNamespace = true
			},
			col: schema.Column{
				Name:       "moods",
				RawType:    "mood[]",
				Kind:       schema.KindNumericEnum,
				EnumSchema: "public",
			},
			want: "public.mood[]",
		},
		{
			name: "enum ignores type override",
			setup: func(c *config.Config) {
				c.TypeOverrides = map[string]string{"public.users.mood": "string"}
			},
			col: schema.Column{
				Name:    "mood",
				RawType: "mood",
				Kind:    schema.KindNumericEnum,
			},
			want: "mood",
		},
		{
			name: "standard uses override key",
			setup: func(c *config.Config) {
				c.TypeOverrides = map[string]string{"public.users.id": "UserId"}
			},
			col:  schema.Column{Name: "id", RawType: "int4"},
			want: "UserId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(newConfig(tt.setup))
			assert.Equal(t, tt.want, r.ConvertType(tt.col, "users", "public"))
		})
	}
}

func TestOptionality(t *testing.T) {
	tests := []struct {
		name        string
		global      string
		perColumn   map[string]string
		rawOptional bool
		want        bool
	}{
		{"optional ignores raw false", config.OptionalityOptional, nil, false, true},
		{"optional ignores raw true", config.OptionalityOptional, nil, true, true},
		{"required ignores raw true", config.OptionalityRequired, nil, true, false},
		{"required ignores raw false", config.OptionalityRequired, nil, false, false},
		{"dynamic follows raw true", config.OptionalityDynamic, nil, true, true},
		{"dynamic follows raw false", config.OptionalityDynamic, nil, false, false},
		{
			name:        "column override beats global",
			global:      config.OptionalityOptional,
			perColumn:   map[string]string{"public.users.email": config.OptionalityRequired},
			rawOptional: true,
			want:        false,
		},
		{
			name:        "column dynamic under required global",
			global:      config.OptionalityRequired,
			perColumn:   map[string]string{"public.users.email": config.OptionalityDynamic},
			rawOptional: true,
			want:        true,
		},
		{
			name:        "override for another column ignored",
			global:      config.OptionalityRequired,
			perColumn:   map[string]string{"public.users.name": config.OptionalityOptional},
			rawOptional: true,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(newConfig(func(c *config.Config) {
				c.GlobalOptionality = tt.global
				c.ColumnOptionality = tt.perColumn
			}))
			assert.Equal(t, tt.want, r.Optionality(tt.rawOptional, "public.users.email"))
		})
	}
}

func TestNormalizeRawType(t *testing.T) {
	assert.Equal(t, "varchar", NormalizeRawType(" VARCHAR(255) "))
	assert.Equal(t, "decimal", NormalizeRawType("decimal(10, 2)"))
	assert.Equal(t, "int4[]", NormalizeRawType("int4[]"))
	assert.Equal(t, "double precision", NormalizeRawType("DOUBLE   PRECISION"))
}
