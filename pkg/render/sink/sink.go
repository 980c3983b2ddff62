package sink

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/render/styles"
	"github.com/matzehuels/spendmap/pkg/spend"
	"github.com/matzehuels/spendmap/pkg/treemap"
)

// DefaultScale is the PNG pixel density (2x for high-DPI screens).
const DefaultScale = 2.0

// Option configures a sink. Options that do not apply to a sink are ignored.
type Option func(*renderer)

type renderer struct {
	rules   styles.Rules
	palette styles.Palette
	format  spend.Formatter
	style   styles.Style
	docID   string
	scale   float64
}

// WithRules sets the size-threshold table deciding which text cells show.
func WithRules(r styles.Rules) Option { return func(c *renderer) { c.rules = r } }

// WithPalette sets the category colours.
func WithPalette(p styles.Palette) Option { return func(c *renderer) { c.palette = p } }

// WithFormatter sets how amounts and shares are printed.
func WithFormatter(f spend.Formatter) Option { return func(c *renderer) { c.format = f } }

// WithStyle sets the SVG style (default [styles.Simple]).
func WithStyle(s styles.Style) Option { return func(c *renderer) { c.style = s } }

// WithDocumentID fixes the prefix used for SVG element ids. Without it a
// random UUID is used so several charts can share one HTML page.
func WithDocumentID(id string) Option { return func(c *renderer) { c.docID = id } }

// WithScale sets the PNG scale factor (default [DefaultScale]).
func WithScale(s float64) Option { return func(c *renderer) { c.scale = s } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		rules:   styles.DefaultRules(),
		palette: styles.DefaultPalette(),
		format:  spend.NewFormatter("en", "$"),
		style:   styles.Simple{},
		scale:   DefaultScale,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}
	if r.docID == "" {
		r.docID = "spendmap-" + uuid.NewString()[:8]
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}
	return r
}

// buildBlocks converts the chart's non-empty cells into styled blocks, in
// cell order so children are drawn over their category.
func buildBlocks(ch *chart.Chart, r renderer) []styles.Block {
	colors := r.palette.Assign(ch.Cells)
	parents := make(map[string]bool)
	for _, c := range ch.Cells {
		if c.Parent != "" {
			parents[c.Parent] = true
		}
	}

	blocks := make([]styles.Block, 0, len(ch.Cells))

	for i, c := range ch.Cells {
		if c.Rect.Empty() {
			continue
		}
		fill := colors[c.Item.ID]
		st := chart.StatsOf(c, ch.Total)

		b := styles.Block{
			ID:        c.Item.ID,
			DOMID:     fmt.Sprintf("%s-cell-%d", r.docID, i),
			Parent:    c.Parent,
			Depth:     c.Depth,
			X:         c.Rect.X,
			Y:         c.Rect.Y,
			W:         c.Rect.W,
			H:         c.Rect.H,
			Fill:      fill.Hex(),
			Stroke:    styles.StrokeColor(fill),
			TextColor: styles.TextColor(fill),
			Title:     tooltip(c, st, r.format),
		}

		if parents[c.Item.ID] {
			b.Anchor = styles.AnchorTop
			b.Header = ch.Header
			b.Lines = headerLines(c, st, r, min(c.Rect.H, ch.Header))
		} else {
			b.Lines = cellLines(c, st, r)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func cellLines(c treemap.Cell, st chart.Stats, r renderer) []string {
	var lines []string
	for _, a := range r.rules.Visible(c.Rect.W, c.Rect.H) {
		switch a {
		case styles.ActionLabel:
			lines = append(lines, displayLabel(c))
		case styles.ActionValue:
			lines = append(lines, r.format.Compact(st.Value))
		case styles.ActionShare:
			lines = append(lines, r.format.Percent(st.Share))
		}
	}
	return lines
}

// headerLines returns the single line drawn in a category's header band.
func headerLines(c treemap.Cell, st chart.Stats, r renderer, band float64) []string {
	if !r.rules.Allows(styles.ActionLabel, c.Rect.W, band) {
		return nil
	}
	line := displayLabel(c)
	if r.rules.Allows(styles.ActionValue, c.Rect.W, c.Rect.H) {
		line += " · " + r.format.Compact(st.Value)
	}
	return []string{line}
}

func displayLabel(c treemap.Cell) string {
	if c.Item.Label != "" {
		return c.Item.Label
	}
	return c.Item.ID
}

func tooltip(c treemap.Cell, st chart.Stats, f spend.Formatter) string {
	name := displayLabel(c)
	if c.Parent != "" {
		name = c.Parent + " / " + name
	}
	s := fmt.Sprintf("%s\n%s (%s)", name, f.Amount(st.Value), f.Percent(st.Share))
	if st.Count > 0 {
		s += fmt.Sprintf("\n%d line items", st.Count)
	}
	return s
}
