package sink

import (
	"github.com/goccy/go-json"

	"github.com/matzehuels/spendmap/pkg/chart"
	spendio "github.com/matzehuels/spendmap/pkg/io"
)

// RenderJSON exports the chart as a pretty-printed layout document with each
// cell's fill colour and visible text lines added.
//
// The output is a superset of the layout document written by
// [spendio.WriteLayout], so it can be read back with [spendio.ReadLayout].
// Zero-area cells are kept so the document lists every cell.
func RenderJSON(ch *chart.Chart, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	doc := spendio.FromChart(ch)

	styled := make(map[string]int, len(doc.Cells))
	for i, c := range doc.Cells {
		styled[c.ID] = i
	}
	for _, b := range buildBlocks(ch, r) {
		i := styled[b.ID]
		doc.Cells[i].Fill = b.Fill
		doc.Cells[i].Lines = b.Lines
	}
	return json.MarshalIndent(doc, "", "  ")
}
