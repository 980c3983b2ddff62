package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
	lineSpacing     = 1.2
)

// FontSize picks a font size that fits text of textLen runes into a box of
// the given size, clamped to a readable range.
func FontSize(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// LinesFontSize returns the font size for stacking lines inside a w×h box.
// The longest line and the number of lines both constrain the result.
func LinesFontSize(w, h float64, lines []string) float64 {
	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	n := max(1, len(lines))
	return FontSize(w, h/(float64(n)*lineSpacing), longest)
}

// LineHeight returns the distance between baselines for fontSize.
func LineHeight(fontSize float64) float64 { return fontSize * lineSpacing }

// TruncateLabel shortens label so it fits availWidth at fontSize, ending
// it with "..". Labels always keep at least one character.
func TruncateLabel(label string, availWidth, fontSize float64) string {
	charWidth := fontSize * fontCharWidth
	maxChars := int(availWidth * fontWidthRatio / charWidth)
	if maxChars < 3 {
		maxChars = 3
	}

	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
