package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spendmap/pkg/chart"
)

// browseCommand creates the browse command for exploring a chart in the terminal.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [records|layout.json]",
		Short: "Explore a spend treemap in the terminal",
		Long: `Explore a spend treemap in the terminal.

Arrow keys move between cells, enter zooms into a category, esc returns to
the category view and q quits. The last selected cell is printed on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runBrowse(ctx context.Context, input string) error {
	opts, err := c.options(input, nil)
	if err != nil {
		return err
	}
	result, err := c.newRunner().Build(ctx, opts)
	if err != nil {
		return err
	}

	model := NewBrowseModel(result.Chart, opts.Config.Formatter(), opts.Config.StyleRules())
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	if m, ok := final.(BrowseModel); ok {
		if cell, ok := m.Selected(); ok {
			st := chart.StatsOf(cell, result.Chart.Total)
			printSuccess(c.out, "%s", cell.Item.ID)
			printStats(c.out, m.Format.Amount(st.Value), m.Format.Percent(st.Share))
		}
	}
	return nil
}
