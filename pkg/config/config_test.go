package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/spendmap/pkg/errors"
	"github.com/matzehuels/spendmap/pkg/render/styles"
)

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(`
[canvas]
width = 1600

[layout]
preset = "Dashboard"
max_categories = 8

[format]
locale = "de-DE"
currency = "€"
decimal_comma = true

[columns]
value = ["net"]
`)
	require.NoError(t, err)

	assert.Equal(t, 1600.0, cfg.Canvas.Width)
	assert.Equal(t, 800.0, cfg.Canvas.Height, "unset keys keep defaults")
	assert.Equal(t, 8, cfg.Layout.MaxCategories)
	assert.Equal(t, []string{"net"}, cfg.Columns.Value)
	assert.Equal(t, []string{"category"}, cfg.Columns.Category)
	assert.Equal(t, styles.DefaultRules(), cfg.StyleRules())

	assert.Len(t, cfg.TreemapOptions(), 1)
	assert.Equal(t, 8, cfg.ChartOptions().MaxCategories)
	assert.Len(t, cfg.RecordOptions(), 2)
	assert.Equal(t, "€1.235", cfg.Formatter().Amount(1234.6))
}

func TestParseRulesReplaceDefaults(t *testing.T) {
	cfg, err := Parse(`
[[rules]]
action = "label"
min_width = 10
min_height = 10
`)
	require.NoError(t, err)
	assert.Equal(t, styles.Rules{{MinWidth: 10, MinHeight: 10, Action: styles.ActionLabel}}, cfg.StyleRules())
}

func TestParseLayoutOverrides(t *testing.T) {
	cfg, err := Parse(`
[layout]
min_row_size = 3
aspect_cutoff = 1.5
`)
	require.NoError(t, err)
	assert.Len(t, cfg.TreemapOptions(), 2)
}

func TestTreemapOptionsPresets(t *testing.T) {
	tests := []struct {
		preset string
		want   int
	}{
		{"standard", 0},
		{"classic", 1},
		{"CLASSIC", 1},
		{"dashboard", 1},
	}
	for _, tt := range tests {
		cfg, err := Parse("[layout]\npreset = \"" + tt.preset + "\"\n")
		require.NoError(t, err, tt.preset)
		assert.Len(t, cfg.TreemapOptions(), tt.want, tt.preset)
	}

	assert.Empty(t, Default().TreemapOptions(), "default preset uses the engine defaults")
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"zero width", "[canvas]\nwidth = 0", "canvas.width"},
		{"negative height", "[canvas]\nheight = -5", "canvas.height"},
		{"negative padding", "[canvas]\npadding = -1", "canvas.padding"},
		{"unknown preset", "[layout]\npreset = \"spiral\"", "layout.preset"},
		{"small cutoff", "[layout]\naspect_cutoff = 0.5", "layout.aspect_cutoff"},
		{"bad action", "[[rules]]\naction = \"blink\"", "rules[0].action"},
		{"negative rule", "[[rules]]\naction = \"label\"\nmin_width = -1", "rules[0].min_width"},
		{"unknown key", "[canvas]\nwidht = 10", "canvas.widht"},
		{"syntax", "[canvas", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.toml)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[canvas]\nwidth = 640\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Canvas.Width)
}

func TestLoadInvalidNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[canvas]\nwidth = 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, errors.UserMessage(err), path)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "spendmap", "config.toml"), DefaultPath())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "spendmap"), 0o755))
	require.NoError(t, os.WriteFile(DefaultPath(), []byte("[canvas]\nheight = 300\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Canvas.Height)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, 1600.0, cfg.Canvas.Width)
	assert.Equal(t, 6, cfg.Layout.MaxCategories)
	assert.Len(t, cfg.StyleRules(), 3)
}
