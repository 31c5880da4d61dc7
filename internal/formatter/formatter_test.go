package formatter

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/schema"
)

func sampleDatabase() *schema.Database {
	def := "now()"
	return &schema.Database{
		Schemas: []schema.Schema{
			{
				Name:      "public",
				Namespace: "public",
				Tables: []schema.Table{
					{
						Name:          "users",
						Schema:        "public",
						Comment:       "Registered users",
						InterfaceName: "UsersEntity",
						Extends:       "Base",
						Columns: []schema.Column{
							{Name: "id", PropertyName: "id", RawType: "int4", Type: "number", Optional: true, IsPrimaryKey: true},
							{Name: "email", PropertyName: "email", RawType: "varchar", Type: "string", Nullable: true, Comment: "Login email"},
							{Name: "first-name", PropertyName: "first-name", RawType: "text", Type: "string", DefaultValue: &def},
						},
						AdditionalProperties: []string{"fullName: string"},
					},
				},
				Enums: []schema.Enum{
					{
						Name:          "mood",
						Schema:        "public",
						ConvertedName: "mood",
						Values: []schema.EnumValue{
							{Key: "happy", ConvertedKey: "happy", Value: "happy"},
							{Key: "sad", ConvertedKey: "sad", Value: "sad"},
						},
					},
				},
			},
		},
		Custom: map[string]any{"banner": "hello"},
	}
}

const expectedTypeScript = `/*
 * This file was generated by sqlts.
 * Do not edit it by hand; rerun the generator instead.
 */

export enum mood {
  happy = 'happy',
  sad = 'sad',
}

/** Registered users */
export interface UsersEntity extends Base {
  id?: number;
  /** Login email */
  email: string | null;
  'first-name': string;
  fullName: string;
}
`

func TestTypeScriptFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := New(FormatTypeScript, &buf, &config.Config{}, nil)
	require.NoError(t, err)

	require.NoError(t, f.Format(sampleDatabase()))
	assert.Equal(t, expectedTypeScript, buf.String())
}

func TestTypeScriptFormatterNamespace(t *testing.T) {
	var buf bytes.Buffer
	f, err := New(FormatTypeScript, &buf, &config.Config{SchemaAsNamespace: true}, nil)
	require.NoError(t, err)

	require.NoError(t, f.Format(sampleDatabase()))
	out := buf.String()
	assert.Contains(t, out, "export namespace public {\n")
	assert.Contains(t, out, "\n  export enum mood {\n    happy = 'happy',\n")
	assert.Contains(t, out, "\n  export interface UsersEntity extends Base {\n    id?: number;\n")
	assert.True(t, strings.HasSuffix(out, "  }\n}\n"))
}

func TestTypeScriptFormatterCustomTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := `{{.Custom.banner}}{{range .Schemas}}{{range .Tables}}|{{toPascal .Name}}|{{singular .Name}}|{{toSnake .InterfaceName}}{{end}}{{end}}`
	require.NoError(t, afero.WriteFile(fs, "custom.tmpl", []byte(src), 0o644))

	tmpl, err := LoadTemplate(fs, "custom.tmpl")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTypeScriptFormatter(&buf, tmpl, nil).Format(sampleDatabase()))
	assert.Equal(t, "hello|Users|user|users_entity", buf.String())
}

func TestLoadTemplateErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadTemplate(fs, "missing.tmpl")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "broken.tmpl", []byte("{{range}"), 0o644))
	_, err = LoadTemplate(fs, "broken.tmpl")
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"open", "'open'"},
		{"it's", `'it\'s'`},
		{[]byte("raw"), "'raw'"},
		{int64(3), "3"},
		{2.5, "2.5"},
		{true, "true"},
		{nil, "null"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, literal(tt.in))
	}
}

func TestMemberName(t *testing.T) {
	assert.Equal(t, "userId", memberName("userId"))
	assert.Equal(t, "_1", memberName("_1"))
	assert.Equal(t, "$ref", memberName("$ref"))
	assert.Equal(t, "'first-name'", memberName("first-name"))
	assert.Equal(t, "'1st'", memberName("1st"))
}

func TestDocComment(t *testing.T) {
	assert.Equal(t, `ends *\/ early`, docComment("ends */ early"))
	assert.Equal(t, "two lines", docComment("two\n  lines"))
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter(&buf).Format(sampleDatabase()))

	out := buf.String()
	assert.Contains(t, out, "# Database Schema\n")
	assert.Contains(t, out, "## Schema public\n")
	assert.Contains(t, out, "### users\n\nRegistered users\n")
	assert.Contains(t, out, "Interface: `UsersEntity` extends `Base`")
	assert.Contains(t, out, "- **id:** int4 → `number`, PK, NOT NULL, optional\n")
	assert.Contains(t, out, "- **email:** varchar → `string`, Login email\n")
	assert.Contains(t, out, "DEFAULT now()")
	assert.Contains(t, out, "### enum mood\n\n- happy = happy\n- sad = sad\n")
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format(sampleDatabase()))

	expected := "TABLE public.users AS UsersEntity (PK: id)\n" +
		"  id?: number NOT NULL\n" +
		"  email: string\n" +
		"  first-name: string NOT NULL DEFAULT now()\n" +
		"\n" +
		"ENUM public.mood AS mood\n" +
		"  happy|sad\n"
	assert.Equal(t, expected, buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(sampleDatabase()))

	var back schema.Database
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "UsersEntity", back.Schemas[0].Tables[0].InterfaceName)
	assert.Equal(t, "hello", back.Custom["banner"])
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("yaml", &bytes.Buffer{}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestMultiFileFormatter(t *testing.T) {
	db := sampleDatabase()
	db.Schemas = append(db.Schemas, schema.Schema{
		Name:   "",
		Tables: []schema.Table{{Name: "things", InterfaceName: "ThingsEntity"}},
	})

	fs := afero.NewMemMapFs()
	f := NewMultiFileFormatter(fs, "out", FormatTypeScript, &config.Config{}, nil)
	require.NoError(t, f.Format(db))

	assert.Equal(t, []string{
		filepath.Join("out", "public.ts"),
		filepath.Join("out", "default.ts"),
		filepath.Join("out", "index.ts"),
	}, f.Written())

	public, err := afero.ReadFile(fs, filepath.Join("out", "public.ts"))
	require.NoError(t, err)
	assert.Equal(t, expectedTypeScript, string(public))

	index, err := afero.ReadFile(fs, filepath.Join("out", "index.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export * from './public';\nexport * from './default';\n", string(index))
}

func TestMultiFileFormatterMarkdown(t *testing.T) {
	fs := afero.NewMemMapFs()
	f := NewMultiFileFormatter(fs, "docs", FormatMarkdown, nil, nil)
	require.NoError(t, f.Format(sampleDatabase()))

	overview, err := afero.ReadFile(fs, filepath.Join("docs", "_overview.md"))
	require.NoError(t, err)
	assert.Contains(t, string(overview), "- [public](public.md)\n")

	exists, err := afero.Exists(fs, filepath.Join("docs", "public.md"))
	require.NoError(t, err)
	assert.True(t, exists)
}
