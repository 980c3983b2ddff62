package styles

import "bytes"

// Style defines the visual appearance of a rendered treemap.
// Implementations control how cell shapes and their text are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBlock writes the SVG for a single cell shape.
	RenderBlock(buf *bytes.Buffer, b Block)
	// RenderText writes the SVG for a cell's text lines.
	RenderText(buf *bytes.Buffer, b Block)
}

// Anchor says where a block's text is placed.
type Anchor int

const (
	// AnchorCenter centres the text lines in the block.
	AnchorCenter Anchor = iota
	// AnchorTop draws a single line in the block's header band.
	AnchorTop
)

// Block contains all data needed to render a single treemap cell.
type Block struct {
	ID         string   // Cell identifier (data-id)
	DOMID      string   // Document-scoped element id
	Parent     string   // Parent cell identifier, empty for categories
	Depth      int      // 0 for categories, 1 for subcategories
	X, Y, W, H float64  // Position and dimensions
	Fill       string   // Fill colour as #rrggbb
	Stroke     string   // Outline colour as #rrggbb
	TextColor  string   // Text colour as #rrggbb
	Title      string   // Tooltip text
	Lines      []string // Text lines allowed by the rules table, may be empty
	Anchor     Anchor
	Header     float64 // Header band height, used with AnchorTop
}

func (b Block) CX() float64 { return b.X + b.W/2 }
func (b Block) CY() float64 { return b.Y + b.H/2 }
