package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tordrt/sqlts/internal/config"
)

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

func TestConvertCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		c    Case
		want string
	}{
		{"pascal from snake", "user_accounts", Pascal, "UserAccounts"},
		{"pascal merges separators", "user__account-type name", Pascal, "UserAccountTypeName"},
		{"pascal keeps capital runs", "user_ID", Pascal, "UserID"},
		{"pascal merges numeric suffix", "table_1", Pascal, "Table1"},
		{"camel from snake", "first_name", Camel, "firstName"},
		{"camel merges numeric suffix", "address_line_2", Camel, "addressLine2"},
		{"lower", "UserAccounts", Lower, "useraccounts"},
		{"upper", "user_accounts", Upper, "USER_ACCOUNTS"},
		{"passthrough", "user_Accounts", "", "user_Accounts"},
		{"unknown style passes through", "user_accounts", Case("kebab"), "user_accounts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertCase(tt.in, tt.c))
		})
	}
}

func TestSchemaName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"public", "public"},
		{"my-schema", "myschema"},
		{"123abc", "abc"},
		{"1st schema!", "stschema"},
		{"dbo_2", "dbo_2"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SchemaName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, SchemaName(got), "SchemaName should be idempotent")
		})
	}
}

func TestInterfaceName(t *testing.T) {
	tests := []struct {
		name  string
		table string
		setup func(*config.Config)
		want  string
	}{
		{
			name:  "default format",
			table: "users",
			want:  "usersEntity",
		},
		{
			name:  "pascal and singular",
			table: "user_accounts",
			setup: func(c *config.Config) {
				c.TableNameCasing = "pascal"
				c.SingularTableNames = true
			},
			want: "UserAccountEntity",
		},
		{
			name:  "custom format",
			table: "orders",
			setup: func(c *config.Config) {
				c.InterfaceNameFormat = "I${table}"
				c.TableNameCasing = "pascal"
			},
			want: "IOrders",
		},
		{
			name:  "spaces and symbols removed",
			table: "order items$",
			setup: func(c *config.Config) {
				c.InterfaceNameFormat = "${table}"
			},
			want: "order_items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			if tt.setup != nil {
				tt.setup(cfg)
			}
			assert.Equal(t, tt.want, InterfaceName(tt.table, cfg))
		})
	}
}

func TestEnumName(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "order_status", EnumName("order_status", cfg))

	cfg.EnumNameCasing = "pascal"
	cfg.EnumNameFormat = "${name}Enum"
	assert.Equal(t, "OrderStatusEnum", EnumName("order-status", cfg))
}

func TestEnumKey(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		casing string
		format string
		want   string
	}{
		{"plain key unchanged", "active", "", "", "active"},
		{"key with casing", "in_progress", "pascal", "", "InProgress"},
		{"numeric key wrapped", "1", "", "", "_1"},
		{"decimal key wrapped", "2.5", "", "", "_2.5"},
		{"custom numeric format", "42", "", "Value${key}", "Value42"},
		{"alphanumeric not wrapped", "1abc", "", "", "1abc"},
		{"NaN not wrapped", "NaN", "", "", "NaN"},
		{"inf not wrapped", "inf", "", "", "inf"},
		{"Infinity not wrapped", "Infinity", "", "", "Infinity"},
		{"hex float not wrapped", "0x1p3", "", "", "0x1p3"},
		{"signed exponent wrapped", "-1e5", "", "", "_-1e5"},
		{"leading dot wrapped", ".5", "", "", "_.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.EnumKeyCasing = tt.casing
			if tt.format != "" {
				cfg.EnumNumericKeyFormat = tt.format
			}
			got := EnumKey(tt.key, cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumKeyWrapsOnce(t *testing.T) {
	cfg := defaultConfig()
	once := EnumKey("7", cfg)
	assert.Equal(t, "_7", once)
	assert.Equal(t, once, EnumKey(once, cfg))
}

func TestPropertyName(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "first_name", PropertyName("first_name", cfg))

	cfg.ColumnNameCasing = "camel"
	assert.Equal(t, "firstName", PropertyName("first_name", cfg))
}

func TestFullColumnName(t *testing.T) {
	assert.Equal(t, "public.users.id", FullColumnName("users", "public", "id"))
	assert.Equal(t, "users.id", FullColumnName("users", "", "id"))
	assert.Equal(t, "public.users", FullTableName("users", "public"))
	assert.Equal(t, "users", FullTableName("users", ""))
}
