package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/render/styles"
)

// RootNode is the DOT node every category hangs off. Aggregated labels are
// trimmed, so no cell ID starts with a space.
const RootNode = " total"

// ToDOT describes the chart's category → subcategory tree as a Graphviz
// digraph. Nodes are named by cell ID, filled with the treemap colours and
// labelled with the amount and share of the grand total.
func ToDOT(ch *chart.Chart, opts ...Option) string {
	r := newRenderer(opts...)
	colors := r.palette.Assign(ch.Cells)

	var buf bytes.Buffer
	buf.WriteString("digraph spend {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=white];\n", RootNode, "Total\n"+r.format.Amount(ch.Total))
	for _, c := range ch.Cells {
		st := chart.StatsOf(c, ch.Total)
		fill := colors[c.Item.ID]
		label := strings.Join([]string{
			displayLabel(c),
			r.format.Amount(st.Value) + " · " + r.format.Percent(st.Share),
		}, "\n")
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, fontcolor=%q];\n",
			c.Item.ID, label, fill.Hex(), styles.TextColor(fill))
	}

	buf.WriteString("\n")
	for _, c := range ch.Cells {
		parent := c.Parent
		if parent == "" {
			parent = RootNode
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", parent, c.Item.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOT runs the Graphviz dot layout over [ToDOT] and returns the laid
// out graph in DOT format, with node positions and the bounding box filled
// in. The result can be drawn with any Graphviz tool.
func RenderDOT(ch *chart.Chart, opts ...Option) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("dot: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(ch, opts...)))
	if err != nil {
		return nil, fmt.Errorf("dot: parse: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("dot: layout: %w", err)
	}
	return buf.Bytes(), nil
}
