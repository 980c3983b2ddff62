package sink

import (
	"bytes"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/spendmap/pkg/chart"
	spendio "github.com/matzehuels/spendmap/pkg/io"
	"github.com/matzehuels/spendmap/pkg/render/styles"
	"github.com/matzehuels/spendmap/pkg/spend"
	"github.com/matzehuels/spendmap/pkg/treemap"
)

func sampleChart(t *testing.T) *chart.Chart {
	t.Helper()
	nodes, err := spend.Aggregate([]spend.Record{
		{Category: "IT", Subcategory: "Laptops", Value: 600},
		{Category: "IT", Subcategory: "Licenses", Value: 200},
		{Category: "R&D", Subcategory: "Lab <1>", Value: 300},
		{Category: "Travel", Subcategory: "Flights", Value: 100},
		{Category: "Dormant", Subcategory: "Nothing", Value: 0},
	})
	require.NoError(t, err)
	ch, err := chart.New(nodes, treemap.Rect{W: 800, H: 500}, chart.DefaultOptions())
	require.NoError(t, err)
	return ch
}

func nonEmpty(ch *chart.Chart) int {
	n := 0
	for _, c := range ch.Cells {
		if !c.Rect.Empty() {
			n++
		}
	}
	return n
}

var cellRect = regexp.MustCompile(`<rect id="[^"]+" class="cell `)

func TestRenderSVGOneRectPerCell(t *testing.T) {
	ch := sampleChart(t)
	svg := string(RenderSVG(ch, WithDocumentID("doc")))

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" id="doc"`))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Len(t, cellRect.FindAllString(svg, -1), nonEmpty(ch))
	assert.NotContains(t, svg, `data-id="Dormant"`)
}

func TestRenderSVGAttributes(t *testing.T) {
	svg := string(RenderSVG(sampleChart(t), WithDocumentID("doc")))

	assert.Contains(t, svg, `id="doc-cell-0"`)
	assert.Contains(t, svg, `data-id="R&amp;D/Lab &lt;1&gt;"`)
	assert.Contains(t, svg, `data-parent="R&amp;D"`)
	assert.Contains(t, svg, "<title>IT&#xA;$800 (66.7%)&#xA;2 line items</title>")
	assert.Contains(t, svg, SelectEvent)
	assert.Contains(t, svg, `document.getElementById('doc')`)
	assert.Contains(t, svg, `#doc .cell.selected`)
}

func TestRenderSVGRandomDocumentID(t *testing.T) {
	ch := sampleChart(t)
	a := string(RenderSVG(ch))
	b := string(RenderSVG(ch))
	assert.Contains(t, a, `id="spendmap-`)
	assert.NotEqual(t, a, b)
}

func TestRenderSVGRulesHideText(t *testing.T) {
	ch := sampleChart(t)

	none := string(RenderSVG(ch, WithDocumentID("d"), WithRules(styles.Rules{})))
	assert.NotContains(t, none, `class="cell-text"`)

	all := string(RenderSVG(ch, WithDocumentID("d"), WithRules(styles.Rules{
		{Action: styles.ActionLabel},
		{Action: styles.ActionValue},
		{Action: styles.ActionShare},
	})))
	assert.Contains(t, all, `class="cell-text"`)
	assert.Contains(t, all, ">$600<")
}

func TestRenderSVGTinyCellUnlabelled(t *testing.T) {
	ch := &chart.Chart{
		Canvas: treemap.Rect{W: 100, H: 100},
		Total:  100,
		Cells: []treemap.Cell{
			{Item: treemap.Item{ID: "big", Weight: 99.99}, Rect: treemap.Rect{W: 100, H: 99.99}},
			{Item: treemap.Item{ID: "tiny", Weight: 0.01}, Rect: treemap.Rect{Y: 99.99, W: 100, H: 0.01}},
		},
	}
	svg := string(RenderSVG(ch, WithDocumentID("d")))
	assert.Contains(t, svg, `data-id="tiny"`)
	assert.Equal(t, 1, strings.Count(svg, `class="cell-text"`))
}

func TestRenderPNG(t *testing.T) {
	ch := sampleChart(t)

	data, err := RenderPNG(ch, WithScale(1))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())

	data, err = RenderPNG(ch)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
}

func TestRenderJSONReadable(t *testing.T) {
	ch := sampleChart(t)
	data, err := RenderJSON(ch)
	require.NoError(t, err)

	got, err := spendio.ReadLayout(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got.Cells, len(ch.Cells))
	assert.Equal(t, ch.Canvas, got.Canvas)

	var doc spendio.Layout
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "IT", doc.Cells[0].ID)
	assert.Regexp(t, `^#[0-9a-f]{6}$`, doc.Cells[0].Fill)
	assert.Equal(t, 2, doc.Cells[0].Count)
	assert.InDelta(t, 800.0/1200.0, doc.Cells[0].Share, 1e-12)
}

func TestToDOT(t *testing.T) {
	ch := sampleChart(t)
	dot := ToDOT(ch)

	assert.True(t, strings.HasPrefix(dot, "digraph spend {\n"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `" total" [label="Total\n$1,200", fillcolor=white];`)
	assert.Contains(t, dot, `"IT" [label="IT\n$800 · 66.7%"`)
	assert.Contains(t, dot, `" total" -> "IT";`)
	assert.Contains(t, dot, `"IT" -> "IT/Laptops";`)
	assert.Contains(t, dot, `"R&D" -> "R&D/Lab <1>";`)
	assert.Equal(t, len(ch.Cells), strings.Count(dot, " -> "), "one edge per cell")
}

func TestToDOTUsesPalette(t *testing.T) {
	ch := sampleChart(t)
	colors := styles.DefaultPalette().Assign(ch.Cells)
	assert.Contains(t, ToDOT(ch), `fillcolor="`+colors["IT"].Hex()+`"`)
}

func TestRenderDOT(t *testing.T) {
	data, err := RenderDOT(sampleChart(t))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "digraph spend")
	assert.Contains(t, out, `"IT/Laptops"`)
	assert.Contains(t, out, "pos=", "dot layout assigns node positions")
}
