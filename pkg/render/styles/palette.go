package styles

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/spendmap/pkg/treemap"
)

const (
	goldenAngle = 137.50776405003785

	// Subcategories blend their parent towards white between these weights.
	childBlendMin = 0.18
	childBlendMax = 0.6

	darkTextThreshold = 0.62 // Lab lightness above which text is drawn dark
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Palette assigns category colours by golden-angle hue spacing so that
// neighbouring categories never share a hue.
type Palette struct {
	Offset     float64 // starting hue in degrees
	Saturation float64
	Lightness  float64
}

// DefaultPalette returns a muted palette that keeps dark text legible.
func DefaultPalette() Palette {
	return Palette{Offset: 210, Saturation: 0.55, Lightness: 0.52}
}

// Category returns the colour of the i-th category.
func (p Palette) Category(i int) colorful.Color {
	h := math.Mod(p.Offset+float64(i)*goldenAngle, 360)
	return colorful.Hsl(h, p.Saturation, p.Lightness).Clamped()
}

// Child returns the colour of the i-th of n subcategories under parent.
// Later children are lighter.
func (p Palette) Child(parent colorful.Color, i, n int) colorful.Color {
	t := childBlendMin
	if n > 1 {
		t += (childBlendMax - childBlendMin) * float64(i) / float64(n-1)
	}
	return parent.BlendLab(white, t).Clamped()
}

// Assign maps every cell ID to its fill colour. Categories are numbered in
// cell order; subcategories are numbered among their siblings.
func (p Palette) Assign(cells []treemap.Cell) map[string]colorful.Color {
	out := make(map[string]colorful.Color, len(cells))
	siblings := make(map[string]int)
	for _, c := range cells {
		if c.Parent != "" {
			siblings[c.Parent]++
		}
	}

	var cat int
	seen := make(map[string]int)
	for _, c := range cells {
		if c.Parent == "" {
			out[c.Item.ID] = p.Category(cat)
			cat++
			continue
		}
		parent, ok := out[c.Parent]
		if !ok {
			parent = p.Category(0)
		}
		out[c.Item.ID] = p.Child(parent, seen[c.Parent], siblings[c.Parent])
		seen[c.Parent]++
	}
	return out
}

// TextColor returns a hex text colour readable on bg.
func TextColor(bg colorful.Color) string {
	l, _, _ := bg.Lab()
	if l > darkTextThreshold {
		return "#1f2328"
	}
	return "#ffffff"
}

// StrokeColor returns a darker outline for bg.
func StrokeColor(bg colorful.Color) string {
	return bg.BlendLab(colorful.Color{}, 0.35).Clamped().Hex()
}
