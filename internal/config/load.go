package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultPath is the config file read when none is given
const DefaultPath = "sqlts.json"

// EnvPrefix prefixes environment overrides, e.g. SQLTS_CONNECTION
const EnvPrefix = "SQLTS"

// keys that may be supplied through the environment or flags alone
var boundKeys = []string{"client", "connection", "template", "filename", "folder"}

// Load reads the config file at path from fs, applies .env files,
// environment overrides and any flags bound to config keys, then fills
// defaults and validates. flags may be nil.
func Load(fs afero.Fs, path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := loadDotEnv(fs); err != nil {
		return nil, err
	}

	// Dotted map keys such as "public.users.id" must not be split into
	// nested paths.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
		if flags != nil {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", key, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := decodeKeyedSections(fs, path, &cfg); err != nil {
		return nil, err
	}

	cfg.Connection = os.ExpandEnv(cfg.Connection)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// keyedSections holds the options whose map keys are identifiers or
// output names. viper lowercases keys, so these are decoded from the file
// as written.
type keyedSections struct {
	TypeMap              map[string][]string  `json:"typeMap"`
	TypeOverrides        map[string]string    `json:"typeOverrides"`
	ColumnOptionality    map[string]string    `json:"columnOptionality"`
	AdditionalProperties map[string][]string  `json:"additionalProperties"`
	Extends              map[string]string    `json:"extends"`
	TableEnums           map[string]TableEnum `json:"tableEnums"`
	Custom               map[string]any       `json:"custom"`
}

func decodeKeyedSections(fs afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var sections keyedSections
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.TypeMap = sections.TypeMap
	cfg.TypeOverrides = sections.TypeOverrides
	cfg.ColumnOptionality = sections.ColumnOptionality
	cfg.AdditionalProperties = sections.AdditionalProperties
	cfg.Extends = sections.Extends
	cfg.TableEnums = sections.TableEnums
	cfg.Custom = sections.Custom
	return nil
}

// loadDotEnv exports .env without overriding the environment, then lets
// .env.local override both
func loadDotEnv(fs afero.Fs) error {
	for _, f := range []struct {
		name     string
		override bool
	}{
		{".env", false},
		{".env.local", true},
	} {
		vars, err := readEnvFile(fs, f.name)
		if err != nil {
			return err
		}
		for k, val := range vars {
			if _, set := os.LookupEnv(k); set && !f.override {
				continue
			}
			if err := os.Setenv(k, val); err != nil {
				return fmt.Errorf("failed to set %s from %s: %w", k, f.name, err)
			}
		}
	}
	return nil
}

func readEnvFile(fs afero.Fs, name string) (map[string]string, error) {
	if _, err := fs.Stat(name); err != nil {
		return nil, nil
	}
	file, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	vars, err := godotenv.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return vars, nil
}
