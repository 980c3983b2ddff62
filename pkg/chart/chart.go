// Package chart builds a two-level spend treemap from aggregated nodes.
//
// [Build] runs the treemap engine once for the categories inside the canvas
// and once more per category for its subcategories. Each category's
// rectangle is inset by a padding and a header band so the renderer has room
// for the category label above its children.
package chart

import (
	"fmt"
	"strings"

	"github.com/matzehuels/spendmap/pkg/spend"
	"github.com/matzehuels/spendmap/pkg/treemap"
)

// Defaults for [Options].
const (
	DefaultPadding = 2.0
	DefaultHeader  = 18.0
)

// Keys stored in treemap.Item.Meta by [Build].
const (
	MetaValue = "value" // float64 monetary total
	MetaCount = "count" // int number of line items
	MetaShare = "share" // float64 fraction of the grand total
)

// Depths assigned to cells.
const (
	DepthCategory    = 0
	DepthSubcategory = 1
)

// Options configures [Build]. The zero value is not useful; start from
// [DefaultOptions].
type Options struct {
	Padding       float64          // inset on every side of a category before its children
	Header        float64          // extra inset on top of a category for its label
	MaxCategories int              // fold the tail into "Other" (0 = unlimited)
	Layout        []treemap.Option // passed to every treemap.Layout call
}

// DefaultOptions returns the options used by the CLI when nothing is
// configured.
func DefaultOptions() Options {
	return Options{Padding: DefaultPadding, Header: DefaultHeader}
}

// Build lays out nodes and their children inside canvas.
//
// The result lists each category cell followed by its subcategory cells.
// Category IDs are the category labels; subcategory IDs are
// "category/subcategory" and carry the category ID in Parent (see
// [ChildID] for labels containing a slash). A category whose inset rectangle
// collapses gets no subcategory cells.
func Build(nodes []spend.Node, canvas treemap.Rect, opts Options) ([]treemap.Cell, error) {
	nodes = spend.Fold(nodes, opts.MaxCategories)
	grand := spend.Total(nodes)

	top, err := treemap.Layout(toItems(nodes, "", grand), canvas, opts.Layout...)
	if err != nil {
		return nil, err
	}

	out := make([]treemap.Cell, 0, len(top)*4)
	for i, cell := range top {
		cell.Depth = DepthCategory
		out = append(out, cell)

		inner := cell.Rect.Inset(opts.Padding+opts.Header, opts.Padding, opts.Padding, opts.Padding)
		if len(nodes[i].Children) == 0 || !inner.Valid() {
			continue
		}

		kids, err := treemap.Layout(toItems(nodes[i].Children, cell.Item.ID, grand), inner, opts.Layout...)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cell.Item.ID, err)
		}
		for _, k := range kids {
			k.Depth = DepthSubcategory
			k.Parent = cell.Item.ID
			out = append(out, k)
		}
	}
	return out, nil
}

// Chart is a laid-out treemap with the geometry it was built with.
// Sinks render it and the layout JSON document stores it.
type Chart struct {
	Canvas  treemap.Rect
	Padding float64
	Header  float64
	Total   float64
	Cells   []treemap.Cell
}

// New builds the cells for nodes and wraps them in a Chart.
func New(nodes []spend.Node, canvas treemap.Rect, opts Options) (*Chart, error) {
	cells, err := Build(nodes, canvas, opts)
	if err != nil {
		return nil, err
	}
	return &Chart{
		Canvas:  canvas,
		Padding: opts.Padding,
		Header:  opts.Header,
		Total:   spend.Total(nodes),
		Cells:   cells,
	}, nil
}

// Find returns the cell with the given ID.
func (c *Chart) Find(id string) (treemap.Cell, bool) {
	for _, cell := range c.Cells {
		if cell.Item.ID == id {
			return cell, true
		}
	}
	return treemap.Cell{}, false
}

// HasChildren reports whether any cell has id as its parent.
func (c *Chart) HasChildren(id string) bool {
	for _, cell := range c.Cells {
		if cell.Parent == id {
			return true
		}
	}
	return false
}

// IDSeparator joins a category ID and a subcategory label.
const IDSeparator = "/"

var idEscaper = strings.NewReplacer("%", "%25", IDSeparator, "%2F")

// ChildID returns the cell ID used for label under the parent ID, or the
// category ID when parent is empty. "%" and "/" inside label are
// percent-escaped so no two cells share an ID: category "IT/Software" is
// "IT%2FSoftware" while subcategory Software of IT is "IT/Software".
func ChildID(parent, label string) string {
	label = idEscaper.Replace(label)
	if parent == "" {
		return label
	}
	return parent + IDSeparator + label
}

// Children returns the cells whose Parent is id, in layout order.
func Children(cells []treemap.Cell, id string) []treemap.Cell {
	var out []treemap.Cell
	for _, c := range cells {
		if c.Parent == id {
			out = append(out, c)
		}
	}
	return out
}

// AtDepth returns the cells at the given depth, in layout order.
func AtDepth(cells []treemap.Cell, depth int) []treemap.Cell {
	var out []treemap.Cell
	for _, c := range cells {
		if c.Depth == depth {
			out = append(out, c)
		}
	}
	return out
}

func toItems(nodes []spend.Node, parent string, grand float64) []treemap.Item {
	items := make([]treemap.Item, len(nodes))
	for i, n := range nodes {
		items[i] = treemap.Item{
			ID:     ChildID(parent, n.Label),
			Weight: n.Total,
			Label:  n.Label,
			Meta: map[string]any{
				MetaValue: n.Total,
				MetaCount: n.Count,
				MetaShare: n.Share(grand),
			},
		}
	}
	return items
}
