package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/randalmurphal/eventkit/pkg/eventkit/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies Config creation from maps.
func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"backend": "sqlite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

// TestString verifies string extraction with defaults.
func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"backend": "sqlite"}, "backend", "memory", "sqlite"},
		{"key missing", map[string]any{"other": "x"}, "backend", "memory", "memory"},
		{"empty string kept", map[string]any{"backend": ""}, "backend", "memory", ""},
		{"wrong type int", map[string]any{"backend": 3}, "backend", "memory", "memory"},
		{"wrong type bool", map[string]any{"backend": true}, "backend", "memory", "memory"},
		{"nil value", map[string]any{"backend": nil}, "backend", "memory", "memory"},
		{"nil map", nil, "backend", "memory", "memory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.String(tt.key, tt.defaultVal))
		})
	}
}

// TestBool verifies boolean extraction with defaults.
func TestBool(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal bool
		want       bool
	}{
		{"true value", map[string]any{"verbose": true}, "verbose", false, true},
		{"false value", map[string]any{"verbose": false}, "verbose", true, false},
		{"missing default false", map[string]any{}, "verbose", false, false},
		{"missing default true", map[string]any{}, "verbose", true, true},
		{"wrong type string", map[string]any{"verbose": "true"}, "verbose", false, false},
		{"wrong type int", map[string]any{"verbose": 1}, "verbose", false, false},
		{"nil map", nil, "verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Bool(tt.key, tt.defaultVal))
		})
	}
}

// TestInt verifies integer extraction with type coercion.
func TestInt(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal int
		want       int
	}{
		{"int value", map[string]any{"limit": 50}, "limit", 10, 50},
		{"int64 value", map[string]any{"limit": int64(200)}, "limit", 10, 200},
		{"float64 whole", map[string]any{"limit": 25.0}, "limit", 10, 25},
		{"float64 fractional", map[string]any{"limit": 25.5}, "limit", 10, 10},
		{"negative", map[string]any{"limit": -4}, "limit", 10, -4},
		{"zero kept", map[string]any{"limit": 0}, "limit", 10, 0},
		{"large float64 whole", map[string]any{"limit": 1e9}, "limit", 10, 1000000000},
		{"key missing", map[string]any{}, "limit", 10, 10},
		{"wrong type string", map[string]any{"limit": "50"}, "limit", 10, 10},
		{"nil map", nil, "limit", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Int(tt.key, tt.defaultVal))
		})
	}
}

// TestFloat verifies float64 extraction with type coercion.
func TestFloat(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal float64
		want       float64
	}{
		{"float64 value", map[string]any{"rate": 0.75}, "rate", 1.0, 0.75},
		{"int value", map[string]any{"rate": 3}, "rate", 1.0, 3.0},
		{"int64 value", map[string]any{"rate": int64(7)}, "rate", 1.0, 7.0},
		{"negative", map[string]any{"rate": -0.5}, "rate", 1.0, -0.5},
		{"zero kept", map[string]any{"rate": 0.0}, "rate", 1.0, 0.0},
		{"key missing", map[string]any{}, "rate", 1.0, 1.0},
		{"wrong type string", map[string]any{"rate": "0.75"}, "rate", 1.0, 1.0},
		{"nil map", nil, "rate", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.InDelta(t, tt.want, cfg.Float(tt.key, tt.defaultVal), 0.0001)
		})
	}
}

// TestDuration verifies duration extraction with various input types.
func TestDuration(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"string duration", map[string]any{"slow": "250ms"}, "slow", time.Second, 250 * time.Millisecond},
		{"string compound", map[string]any{"slow": "1h30m"}, "slow", time.Second, 90 * time.Minute},
		{"string negative", map[string]any{"slow": "-2s"}, "slow", time.Second, -2 * time.Second},
		{"int seconds", map[string]any{"slow": 30}, "slow", time.Second, 30 * time.Second},
		{"int64 seconds", map[string]any{"slow": int64(45)}, "slow", time.Second, 45 * time.Second},
		{"float64 seconds", map[string]any{"slow": 1.5}, "slow", time.Second, 1500 * time.Millisecond},
		{"duration value", map[string]any{"slow": 5 * time.Minute}, "slow", time.Second, 5 * time.Minute},
		{"zero int kept", map[string]any{"slow": 0}, "slow", time.Second, 0},
		{"key missing", map[string]any{}, "slow", time.Second, time.Second},
		{"invalid string", map[string]any{"slow": "soon"}, "slow", time.Second, time.Second},
		{"wrong type bool", map[string]any{"slow": true}, "slow", time.Second, time.Second},
		{"nil map", nil, "slow", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Duration(tt.key, tt.defaultVal))
		})
	}
}

// TestStringSlice verifies string slice extraction.
func TestStringSlice(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal []string
		want       []string
	}{
		{
			"[]string value",
			map[string]any{"categories": []string{"order.placed", "order.shipped"}},
			"categories",
			[]string{"*"},
			[]string{"order.placed", "order.shipped"},
		},
		{
			"[]any with strings",
			map[string]any{"categories": []any{"a", "b"}},
			"categories",
			[]string{"*"},
			[]string{"a", "b"},
		},
		{
			"[]any mixed types",
			map[string]any{"categories": []any{"a", 2}},
			"categories",
			[]string{"*"},
			[]string{"*"},
		},
		{
			"empty []string",
			map[string]any{"categories": []string{}},
			"categories",
			[]string{"*"},
			[]string{},
		},
		{
			"key missing",
			map[string]any{},
			"categories",
			[]string{"*"},
			[]string{"*"},
		},
		{
			"wrong type string",
			map[string]any{"categories": "order.placed"},
			"categories",
			[]string{"*"},
			[]string{"*"},
		},
		{
			"nil default",
			map[string]any{},
			"categories",
			nil,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.StringSlice(tt.key, tt.defaultVal))
		})
	}
}

// TestSub verifies nested section extraction.
func TestSub(t *testing.T) {
	cfg := config.New(map[string]any{
		"journal": map[string]any{
			"backend": "sqlite",
			"path":    "events.db",
		},
		"flat": "value",
	})

	t.Run("existing section", func(t *testing.T) {
		journal := cfg.Sub("journal")
		assert.Equal(t, "sqlite", journal.String("backend", "memory"))
		assert.Equal(t, "events.db", journal.String("path", ""))
	})

	t.Run("missing section is empty", func(t *testing.T) {
		sub := cfg.Sub("absent")
		assert.NotNil(t, sub.Raw())
		assert.Equal(t, "memory", sub.String("backend", "memory"))
	})

	t.Run("non-map value is empty", func(t *testing.T) {
		sub := cfg.Sub("flat")
		assert.False(t, sub.Has("anything"))
	})

	t.Run("chained lookups are safe", func(t *testing.T) {
		got := cfg.Sub("absent").Sub("deeper").String("key", "fallback")
		assert.Equal(t, "fallback", got)
	})
}

// TestAny verifies raw value extraction.
func TestAny(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal any
		want       any
	}{
		{"string value", map[string]any{"v": "hello"}, "v", nil, "hello"},
		{"int value", map[string]any{"v": 9}, "v", nil, 9},
		{"slice value", map[string]any{"v": []int{1, 2}}, "v", nil, []int{1, 2}},
		{"nil value kept", map[string]any{"v": nil}, "v", "fallback", nil},
		{"key missing", map[string]any{}, "v", "fallback", "fallback"},
		{"nil map", nil, "v", "fallback", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Any(tt.key, tt.defaultVal))
		})
	}
}

// TestHas verifies key existence checks.
func TestHas(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		key  string
		want bool
	}{
		{"key exists", map[string]any{"backend": "sqlite"}, "backend", true},
		{"key missing", map[string]any{"other": "x"}, "backend", false},
		{"nil value counts", map[string]any{"backend": nil}, "backend", true},
		{"nil map", nil, "backend", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.Has(tt.key))
		})
	}
}

// TestRaw verifies access to the underlying map.
func TestRaw(t *testing.T) {
	data := map[string]any{"backend": "memory"}
	cfg := config.New(data)
	assert.Equal(t, data, cfg.Raw())
}

// TestFromYAML verifies YAML parsing.
func TestFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(*testing.T, config.Config)
	}{
		{
			"simple values",
			`backend: sqlite
limit: 25
verbose: true`,
			false,
			func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "sqlite", cfg.String("backend", ""))
				assert.Equal(t, 25, cfg.Int("limit", 0))
				assert.True(t, cfg.Bool("verbose", false))
			},
		},
		{
			"nested section",
			`journal:
  backend: sqlite
  path: /tmp/events.db`,
			false,
			func(t *testing.T, cfg config.Config) {
				journal := cfg.Sub("journal")
				assert.Equal(t, "sqlite", journal.String("backend", ""))
				assert.Equal(t, "/tmp/events.db", journal.String("path", ""))
			},
		},
		{
			"list values",
			`categories:
  - order.placed
  - order.shipped`,
			false,
			func(t *testing.T, cfg config.Config) {
				got := cfg.StringSlice("categories", nil)
				assert.Equal(t, []string{"order.placed", "order.shipped"}, got)
			},
		},
		{
			"empty yaml",
			``,
			false,
			func(t *testing.T, cfg config.Config) {
				assert.False(t, cfg.Has("anything"))
			},
		},
		{
			"invalid yaml",
			`backend: [unclosed`,
			true,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromYAML([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// TestFromJSON verifies JSON parsing.
func TestFromJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
		check   func(*testing.T, config.Config)
	}{
		{
			"simple values",
			`{"backend": "memory", "limit": 40, "verbose": false}`,
			false,
			func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "memory", cfg.String("backend", ""))
				// JSON numbers decode as float64; whole values still convert.
				assert.Equal(t, 40, cfg.Int("limit", 0))
				assert.False(t, cfg.Bool("verbose", true))
			},
		},
		{
			"nested section",
			`{"journal": {"backend": "sqlite", "path": "events.db"}}`,
			false,
			func(t *testing.T, cfg config.Config) {
				journal := cfg.Sub("journal")
				assert.Equal(t, "sqlite", journal.String("backend", ""))
				assert.Equal(t, "events.db", journal.String("path", ""))
			},
		},
		{
			"array values",
			`{"categories": ["inventory.low", "inventory.out"]}`,
			false,
			func(t *testing.T, cfg config.Config) {
				got := cfg.StringSlice("categories", nil)
				assert.Equal(t, []string{"inventory.low", "inventory.out"}, got)
			},
		},
		{
			"empty object",
			`{}`,
			false,
			func(t *testing.T, cfg config.Config) {
				assert.False(t, cfg.Has("anything"))
			},
		},
		{
			"invalid json",
			`{backend: sqlite}`,
			true,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromJSON([]byte(tt.json))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// TestFromFile verifies file loading with extension detection.
func TestFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	yamlPath := filepath.Join(tmpDir, "eventkit.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("backend: sqlite\nlimit: 7"), 0o644))

	ymlPath := filepath.Join(tmpDir, "eventkit.yml")
	require.NoError(t, os.WriteFile(ymlPath, []byte("backend: memory\nlimit: 8"), 0o644))

	jsonPath := filepath.Join(tmpDir, "eventkit.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"backend": "sqlite", "limit": 9}`), 0o644))

	tomlPath := filepath.Join(tmpDir, "eventkit.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`backend = "sqlite"`), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr string
		check   func(*testing.T, config.Config)
	}{
		{
			"yaml file", yamlPath, "",
			func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "sqlite", cfg.String("backend", ""))
				assert.Equal(t, 7, cfg.Int("limit", 0))
			},
		},
		{
			"yml file", ymlPath, "",
			func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "memory", cfg.String("backend", ""))
				assert.Equal(t, 8, cfg.Int("limit", 0))
			},
		},
		{
			"json file", jsonPath, "",
			func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "sqlite", cfg.String("backend", ""))
				assert.Equal(t, 9, cfg.Int("limit", 0))
			},
		},
		{"unsupported extension", tomlPath, "unsupported config file extension", nil},
		{"file not found", filepath.Join(tmpDir, "missing.yaml"), "read config file", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromFile(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// TestFromFile_CaseInsensitiveExtension verifies extension matching ignores case.
func TestFromFile_CaseInsensitiveExtension(t *testing.T) {
	tmpDir := t.TempDir()

	yamlPath := filepath.Join(tmpDir, "eventkit.YAML")
	require.NoError(t, os.WriteFile(yamlPath, []byte("backend: upper"), 0o644))

	jsonPath := filepath.Join(tmpDir, "eventkit.Json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"backend": "mixed"}`), 0o644))

	cfg, err := config.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "upper", cfg.String("backend", ""))

	cfg, err = config.FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "mixed", cfg.String("backend", ""))
}
