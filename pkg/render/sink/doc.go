// Package sink provides output format renderers for spend treemaps.
//
// # Overview
//
// A "sink" transforms a laid-out [chart.Chart] into a final output format:
//
//   - SVG: scalable vector graphics with hover and click interaction
//   - PNG: raster image drawn with fogleman/gg
//   - JSON: the layout document plus colours and visible text
//   - DOT: the category tree laid out by Graphviz, as a node-link view
//
// All sinks share the same [Option] set; options a sink does not use are
// ignored.
//
// # Text Rules
//
// Which text a cell shows (label, value, share) is decided by a
// [styles.Rules] table of minimum sizes, set with [WithRules]. Cells smaller
// than every rule, including zero-area cells, are drawn without text. Zero
// area cells are not drawn at all in SVG and PNG output.
//
// # SVG Interaction
//
// [RenderSVG] output is self-contained. Each cell <rect> carries data-id (and
// data-parent for subcategories) and a <title> tooltip. Hovering a cell
// highlights it together with its parent or children and clicking toggles a
// "selected" class and dispatches a [SelectEvent] on the <svg> element:
//
//	svg := sink.RenderSVG(ch, sink.WithDocumentID("q3-spend"))
//
//	document.getElementById('q3-spend')
//	  .addEventListener('spendmap:select', e => console.log(e.detail.id))
//
// Element ids are prefixed with the document id so several charts can be
// embedded in one page. Without [WithDocumentID] a random id is generated.
//
// [chart.Chart]: github.com/matzehuels/spendmap/pkg/chart.Chart
// [styles.Rules]: github.com/matzehuels/spendmap/pkg/render/styles.Rules
package sink
