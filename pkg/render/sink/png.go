package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/fonts"
	"github.com/matzehuels/spendmap/pkg/render/styles"
)

const pngHeaderInset = 4.0

// RenderPNG rasterises the chart. Output pixels are canvas units times the
// scale set with [WithScale].
func RenderPNG(ch *chart.Chart, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	blocks := buildBlocks(ch, r)
	c := ch.Canvas

	w := int(math.Ceil(c.W * r.scale))
	h := int(math.Ceil(c.H * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty canvas %.0fx%.0f", c.W, c.H)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(-c.X, -c.Y)

	for _, b := range blocks {
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		dc.SetHexColor(b.Fill)
		dc.FillPreserve()
		dc.SetHexColor(b.Stroke)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
	for _, b := range blocks {
		if err := drawText(dc, b); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(dc *gg.Context, b styles.Block) error {
	if len(b.Lines) == 0 {
		return nil
	}
	dc.SetHexColor(b.TextColor)

	if b.Anchor == styles.AnchorTop {
		availW := b.W - 2*pngHeaderInset
		size := min(styles.FontSize(availW, b.Header, len([]rune(b.Lines[0]))), b.Header*0.72)
		face, err := fonts.Face(fonts.Bold, size)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.DrawStringAnchored(styles.TruncateLabel(b.Lines[0], availW, size), b.X+pngHeaderInset, b.Y+b.Header/2, 0, 0.5)
		return nil
	}

	size := styles.LinesFontSize(b.W, b.H, b.Lines)
	face, err := fonts.Face(fonts.Regular, size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	lh := styles.LineHeight(size)
	top := b.CY() - lh*float64(len(b.Lines)-1)/2
	for i, line := range b.Lines {
		dc.DrawStringAnchored(styles.TruncateLabel(line, b.W, size), b.CX(), top+float64(i)*lh, 0.5, 0.5)
	}
	return nil
}
