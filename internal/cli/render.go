package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spendmap/pkg/pipeline"
)

// renderCommand creates the render command for producing chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render [records|layout.json]",
		Short: "Render a spend treemap to SVG, PNG, JSON or DOT",
		Long: `Render a spend treemap to SVG, PNG, JSON or DOT.

The input is either a record file (.csv, .json, .xlsx) or a layout document
written by 'spendmap layout'. With a single format, -o names the output file;
with several, -o is the base path and each format gets its own extension.

The SVG is interactive: hovering a cell highlights it and its relatives, and
clicking it dispatches a "spendmap:select" event carrying the cell ID.
The DOT output is the category tree laid out by Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, formats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot (comma-separated)")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, formats []string) error {
	opts, err := c.options(input, formats)
	if err != nil {
		return err
	}
	prog := newProgress(c.Logger)

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}

	single := len(opts.Formats) == 1
	var written []string
	for _, format := range opts.Formats {
		path := outputPath(output, input, format, single)
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(written)))

	printSuccess(c.out, "Render complete")
	for _, path := range written {
		printFile(c.out, path)
	}
	printStats(c.out,
		fmt.Sprintf("%d categories", result.Stats.CategoryCount),
		fmt.Sprintf("%d cells", result.Stats.CellCount),
		opts.Config.Formatter().Compact(result.Stats.Total))
	return nil
}
