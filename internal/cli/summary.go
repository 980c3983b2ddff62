package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/spend"
)

// summaryCommand creates the summary command that prints category totals.
func (c *CLI) summaryCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "summary [records|layout.json]",
		Short: "Print spend totals per category",
		Long: `Print spend totals per category as a table, largest first.

Categories beyond layout.max_categories are folded into "Other", exactly as
they appear in the chart. Use --all to list subcategories too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSummary(cmd.Context(), args[0], all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include subcategories")

	return cmd
}

func (c *CLI) runSummary(ctx context.Context, input string, all bool) error {
	opts, err := c.options(input, nil)
	if err != nil {
		return err
	}
	result, err := c.newRunner().Build(ctx, opts)
	if err != nil {
		return err
	}

	f := opts.Config.Formatter()
	fmt.Fprintln(c.out, StyleTitle.Render("Spend by category"))
	fmt.Fprintln(c.out, summaryTable(result.Chart, f, all))
	printStats(c.out,
		fmt.Sprintf("%d categories", result.Stats.CategoryCount),
		"total "+f.Amount(result.Stats.Total))
	return nil
}

// summaryTable lays out one row per category (and per subcategory when all
// is set) in chart order.
func summaryTable(ch *chart.Chart, f spend.Formatter, all bool) string {
	var rows [][]string
	subRows := map[int]bool{}

	for _, cat := range chart.AtDepth(ch.Cells, chart.DepthCategory) {
		st := chart.StatsOf(cat, ch.Total)
		rows = append(rows, []string{cat.Item.Label, f.Amount(st.Value), f.Percent(st.Share), strconv.Itoa(st.Count)})
		if !all {
			continue
		}
		for _, sub := range chart.Children(ch.Cells, cat.Item.ID) {
			st := chart.StatsOf(sub, ch.Total)
			subRows[len(rows)] = true
			rows = append(rows, []string{"  " + sub.Item.Label, f.Amount(st.Value), f.Percent(st.Share), strconv.Itoa(st.Count)})
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Amount", "Share", "Items").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if col > 0 {
				base = base.Align(lipgloss.Right)
			}
			switch {
			case row == -1:
				return base.Inherit(styleHeader)
			case subRows[row]:
				return base.Foreground(colorGray)
			case col == 1:
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		}).
		Render()
}
