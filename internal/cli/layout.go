package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	spendio "github.com/matzehuels/spendmap/pkg/io"
	"github.com/matzehuels/spendmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing treemap layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "layout [records]",
		Short: "Compute the treemap layout for a spend file",
		Long: `Compute the treemap layout for a spend file.

The layout command reads line items from a .csv, .json or .xlsx file,
aggregates them by category and subcategory and writes the laid-out cells
to a layout document (<input>.layout.json). The document can be rendered
later with 'spendmap render' without recomputing the layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

// runLayout loads the records, computes the layout, and writes the document.
func (c *CLI) runLayout(ctx context.Context, input, output string) error {
	opts, err := c.options(input, nil)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, c.stderr, "Computing layout...")
	spinner.Start()

	result, err := c.newRunner().Build(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		output = basePath("", input) + pipeline.LayoutSuffix
	}
	if err := spendio.ExportLayout(result.Chart, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess(c.out, "Layout complete")
	printFile(c.out, output)
	printStats(c.out,
		fmt.Sprintf("%d categories", result.Stats.CategoryCount),
		fmt.Sprintf("%d cells", result.Stats.CellCount),
		opts.Config.Formatter().Compact(result.Stats.Total))
	printNextStep(c.out, "Render", "spendmap render "+output)

	return nil
}
