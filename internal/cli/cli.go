// Package cli implements the spendmap command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spendmap/pkg/buildinfo"
	"github.com/matzehuels/spendmap/pkg/config"
	"github.com/matzehuels/spendmap/pkg/errors"
	"github.com/matzehuels/spendmap/pkg/observability"
	"github.com/matzehuels/spendmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and derived paths.
	appName = "spendmap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag. Empty means the default location.
	ConfigPath string

	out    io.Writer
	stderr io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		stderr: w,
	}
	observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (tables, file lists) to w.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spendmap draws procurement spend as a treemap",
		Long:         `Spendmap aggregates procurement line items by category and subcategory and lays them out as a two-level squarified treemap, rendered to SVG, PNG, JSON, DOT or the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// options loads the config and builds pipeline options for input.
func (c *CLI) options(input string, formats []string) (pipeline.Options, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Input:   input,
		Formats: formats,
		Config:  cfg,
		Logger:  c.Logger,
	}, nil
}

// =============================================================================
// Paths
// =============================================================================

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input (and the .layout
// marker of a layout document). A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if pipeline.IsLayoutInput(input) {
			return input[:len(input)-len(pipeline.LayoutSuffix)]
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written. A single format honours
// output verbatim; several formats share basePath with their own extension.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// writeFile writes data to path after validating it.
func writeFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}
