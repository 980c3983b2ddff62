// Package config loads spendmap settings from a TOML file.
//
// Every field has a default, so a config file only needs the keys it
// changes:
//
//	[canvas]
//	width = 1600
//	height = 900
//
//	[layout]
//	preset = "dashboard"
//	max_categories = 12
//
//	[format]
//	locale = "de-DE"
//	currency = "€"
//	decimal_comma = true
//
//	[columns]
//	value = ["net_amount", "amount"]
//
//	[[rules]]
//	action = "label"
//	min_width = 40
//	min_height = 16
//
// Supplying any [[rules]] replaces the whole default rules table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/errors"
	spendio "github.com/matzehuels/spendmap/pkg/io"
	"github.com/matzehuels/spendmap/pkg/render/styles"
	"github.com/matzehuels/spendmap/pkg/spend"
	"github.com/matzehuels/spendmap/pkg/treemap"
)

const (
	appName  = "spendmap"
	fileName = "config.toml"

	PresetStandard  = "standard"
	PresetClassic   = "classic"
	PresetDashboard = "dashboard"
)

// Config is the full set of user settings.
type Config struct {
	Canvas  Canvas          `toml:"canvas"`
	Layout  Layout          `toml:"layout"`
	Format  Format          `toml:"format"`
	Columns spendio.Columns `toml:"columns"`
	Rules   []styles.Rule   `toml:"rules" validate:"dive"`
}

// Canvas sets the output size and the category insets.
type Canvas struct {
	Width   float64 `toml:"width" validate:"gt=0"`
	Height  float64 `toml:"height" validate:"gt=0"`
	Padding float64 `toml:"padding" validate:"gte=0"`
	Header  float64 `toml:"header" validate:"gte=0"`
}

// Layout tunes the treemap engine. MinRowSize and AspectCutoff override the
// preset when non-zero.
type Layout struct {
	Preset        string  `toml:"preset" validate:"caseinsensitiveoneof=standard classic dashboard"`
	MinRowSize    int     `toml:"min_row_size" validate:"gte=0"`
	AspectCutoff  float64 `toml:"aspect_cutoff" validate:"eq=0|gte=1"`
	MaxCategories int     `toml:"max_categories" validate:"gte=0"`
}

// Format controls how amounts are parsed and printed.
type Format struct {
	Locale       string `toml:"locale" validate:"required"`
	Currency     string `toml:"currency"`
	DecimalComma bool   `toml:"decimal_comma"`
	Sheet        string `toml:"sheet"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Canvas: Canvas{
			Width:   1200,
			Height:  800,
			Padding: chart.DefaultPadding,
			Header:  chart.DefaultHeader,
		},
		Layout:  Layout{Preset: PresetStandard},
		Format:  Format{Locale: "en-US", Currency: "$"},
		Columns: spendio.DefaultColumns(),
		Rules:   styles.DefaultRules(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/spendmap/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, fileName)
}

// Load reads the config file at path over the defaults. An empty path loads
// [DefaultPath] if it exists and the defaults otherwise; an explicit path
// that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); path == "" || err != nil {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	cfg, err := Parse(string(data))
	if e, ok := err.(*errors.Error); ok {
		e.Message = fmt.Sprintf("config %s: %s", path, e.Message)
	}
	return cfg, err
}

// Parse decodes TOML over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Parse(data string) (*Config, error) {
	cfg := Default()
	cfg.Rules = nil

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if !md.IsDefined("rules") {
		cfg.Rules = styles.DefaultRules()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok {
		msgs := lo.Map(ve, func(fe validator.FieldError, _ int) string {
			return fieldMessage(fe)
		})
		return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(msgs, "; "))
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate")
}

// CanvasRect returns the output region.
func (c *Config) CanvasRect() treemap.Rect {
	return treemap.Rect{W: c.Canvas.Width, H: c.Canvas.Height}
}

// TreemapOptions converts the layout section into engine options.
func (c *Config) TreemapOptions() []treemap.Option {
	var opts []treemap.Option
	switch {
	case strings.EqualFold(c.Layout.Preset, PresetClassic):
		opts = append(opts, treemap.Classic())
	case strings.EqualFold(c.Layout.Preset, PresetDashboard):
		opts = append(opts, treemap.Dashboard())
	}
	if c.Layout.MinRowSize > 0 {
		opts = append(opts, treemap.WithMinRowSize(c.Layout.MinRowSize))
	}
	if c.Layout.AspectCutoff > 0 {
		opts = append(opts, treemap.WithAspectCutoff(c.Layout.AspectCutoff))
	}
	return opts
}

// ChartOptions returns the options for chart.Build.
func (c *Config) ChartOptions() chart.Options {
	return chart.Options{
		Padding:       c.Canvas.Padding,
		Header:        c.Canvas.Header,
		MaxCategories: c.Layout.MaxCategories,
		Layout:        c.TreemapOptions(),
	}
}

// Formatter returns the amount formatter for the format section.
func (c *Config) Formatter() spend.Formatter {
	return spend.NewFormatter(c.Format.Locale, c.Format.Currency)
}

// RecordOptions returns the importer options for the columns and format
// sections.
func (c *Config) RecordOptions() []spendio.RecordOption {
	opts := []spendio.RecordOption{spendio.WithColumns(c.Columns)}
	if c.Format.DecimalComma {
		opts = append(opts, spendio.WithDecimalComma())
	}
	if c.Format.Sheet != "" {
		opts = append(opts, spendio.WithSheet(c.Format.Sheet))
	}
	return opts
}

// StyleRules returns the rules table.
func (c *Config) StyleRules() styles.Rules {
	return styles.Rules(c.Rules)
}
