package styles

import (
	"bytes"
	"fmt"
)

const headerInset = 4.0

// Simple draws flat rectangles with thin outlines and plain text.
type Simple struct{}

// RenderDefs writes nothing; flat fills need no shared definitions.
func (Simple) RenderDefs(buf *bytes.Buffer) {}

// RenderBlock writes the cell's <rect> with its data attributes and a
// <title> tooltip.
func (Simple) RenderBlock(buf *bytes.Buffer, b Block) {
	parent := ""
	if b.Parent != "" {
		parent = fmt.Sprintf(` data-parent="%s"`, EscapeXML(b.Parent))
	}
	fmt.Fprintf(buf, `  <rect id="%s" class="cell depth-%d" data-id="%s"%s x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1">`,
		b.DOMID, b.Depth, EscapeXML(b.ID), parent, b.X, b.Y, b.W, b.H, b.Fill, b.Stroke)
	if b.Title != "" {
		fmt.Fprintf(buf, "<title>%s</title>", EscapeXML(b.Title))
	}
	buf.WriteString("</rect>\n")
}

// RenderText writes a bold label in the header band for categories with
// children and centred lines for every other cell. Blocks without lines
// write nothing.
func (Simple) RenderText(buf *bytes.Buffer, b Block) {
	if len(b.Lines) == 0 {
		return
	}

	if b.Anchor == AnchorTop {
		availW := b.W - 2*headerInset
		size := min(FontSize(availW, b.Header, len([]rune(b.Lines[0]))), b.Header*fontHeightRatio*1.2)
		label := TruncateLabel(b.Lines[0], availW, size)
		fmt.Fprintf(buf, `  <text class="cell-text" data-id="%s" x="%.2f" y="%.2f" font-size="%.1f" fill="%s" font-weight="bold">%s</text>`+"\n",
			EscapeXML(b.ID), b.X+headerInset, b.Y+b.Header*0.72, size, b.TextColor, EscapeXML(label))
		return
	}

	size := LinesFontSize(b.W, b.H, b.Lines)
	lh := LineHeight(size)
	top := b.CY() - lh*float64(len(b.Lines)-1)/2

	fmt.Fprintf(buf, `  <text class="cell-text" data-id="%s" text-anchor="middle" dominant-baseline="middle" font-size="%.1f" fill="%s">`,
		EscapeXML(b.ID), size, b.TextColor)
	for i, line := range b.Lines {
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f">%s</tspan>`, b.CX(), top+float64(i)*lh, EscapeXML(TruncateLabel(line, b.W, size)))
	}
	buf.WriteString("</text>\n")
}
