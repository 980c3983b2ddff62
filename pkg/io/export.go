package io

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/spendmap/pkg/chart"
)

// LayoutVersion is written into every layout document.
const LayoutVersion = 1

// Layout is the JSON layout document.
type Layout struct {
	Version int          `json:"version"`
	Canvas  Rect         `json:"canvas"`
	Padding float64      `json:"padding"`
	Header  float64      `json:"header"`
	Total   float64      `json:"total"`
	Cells   []LayoutCell `json:"cells"`
}

// Rect is a rectangle in the layout document.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutCell is one positioned cell. Fill and Lines are presentation fields
// added by the JSON sink; they are ignored on import.
type LayoutCell struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Parent string   `json:"parent,omitempty"`
	Depth  int      `json:"depth"`
	Rect   Rect     `json:"rect"`
	Value  float64  `json:"value"`
	Count  int      `json:"count"`
	Share  float64  `json:"share"`
	Fill   string   `json:"fill,omitempty"`
	Lines  []string `json:"lines,omitempty"`
}

// FromChart converts a chart into its layout document.
func FromChart(ch *chart.Chart) Layout {
	doc := Layout{
		Version: LayoutVersion,
		Canvas:  rectOf(ch.Canvas.X, ch.Canvas.Y, ch.Canvas.W, ch.Canvas.H),
		Padding: ch.Padding,
		Header:  ch.Header,
		Total:   ch.Total,
		Cells:   make([]LayoutCell, len(ch.Cells)),
	}
	for i, c := range ch.Cells {
		st := chart.StatsOf(c, ch.Total)
		doc.Cells[i] = LayoutCell{
			ID:     c.Item.ID,
			Label:  c.Item.Label,
			Parent: c.Parent,
			Depth:  c.Depth,
			Rect:   rectOf(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H),
			Value:  st.Value,
			Count:  st.Count,
			Share:  st.Share,
		}
	}
	return doc
}

// WriteLayout encodes the layout document for ch and writes it to w.
// The output can be re-imported with [ReadLayout].
func WriteLayout(w io.Writer, ch *chart.Chart) error {
	return EncodeLayout(w, FromChart(ch))
}

// EncodeLayout writes doc as indented JSON.
func EncodeLayout(w io.Writer, doc Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportLayout writes the layout document for ch to a file at path.
func ExportLayout(ch *chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(f, ch)
}

func rectOf(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}
