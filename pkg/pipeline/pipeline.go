// Package pipeline provides the spend treemap pipeline shared by every
// spendmap command.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read line items from a CSV, JSON or XLSX file
//  2. Aggregate: Group records into categories and subcategories
//  3. Layout: Compute the two-level squarified treemap
//  4. Render: Generate output in various formats (SVG, PNG, JSON, DOT)
//
// A saved layout document (*.layout.json) skips the first three stages.
// Each stage can also be run on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "spend.csv",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/config"
	"github.com/matzehuels/spendmap/pkg/errors"
	"github.com/matzehuels/spendmap/pkg/spend"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// LayoutSuffix marks a saved layout document as pipeline input.
const LayoutSuffix = ".layout.json"

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Input is a record file (.csv, .json, .xlsx) or a saved layout (*.layout.json).
	Input string `json:"input"`

	// Formats lists the outputs to render. Defaults to svg.
	Formats []string `json:"formats,omitempty"`

	// DocumentID scopes the SVG's CSS and script. Random when empty.
	DocumentID string `json:"document_id,omitempty"`

	// Runtime options (not serialized)
	Config *config.Config `json:"-"`
	Logger *log.Logger    `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Nodes is the aggregated hierarchy. Nil when the input was a layout document.
	Nodes []spend.Node

	// Chart is the laid-out treemap.
	Chart *chart.Chart

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount   int
	CategoryCount int
	CellCount     int
	Total         float64

	LoadTime      time.Duration
	AggregateTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// IsLayoutInput reports whether path names a saved layout document.
func IsLayoutInput(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), LayoutSuffix)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills in the config, formats and logger when unset.
func (o *Options) SetDefaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = lo.Uniq(o.Formats)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
