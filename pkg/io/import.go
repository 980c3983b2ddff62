package io

import (
	"io"
	"math"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/spendmap/pkg/chart"
	"github.com/matzehuels/spendmap/pkg/errors"
	"github.com/matzehuels/spendmap/pkg/treemap"
)

// ReadLayout decodes a layout document from r into a chart.
//
// The canvas must be a valid rectangle, every cell rectangle must be finite
// with non-negative size, and a cell's parent must appear before it. Cell
// values, counts and shares are restored into Meta so the sinks render
// the chart exactly as it was written. ReadLayout does not close r.
func ReadLayout(r io.Reader) (*chart.Chart, error) {
	var doc Layout
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return doc.Chart()
}

// Chart validates the document and converts it back into a chart.
func (doc Layout) Chart() (*chart.Chart, error) {
	if doc.Version > LayoutVersion {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "layout version %d is newer than supported version %d", doc.Version, LayoutVersion)
	}
	canvas := doc.Canvas.rect()
	if !canvas.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidRegion, "layout canvas %+v is not a valid rectangle", doc.Canvas)
	}

	ch := &chart.Chart{
		Canvas:  canvas,
		Padding: doc.Padding,
		Header:  doc.Header,
		Total:   doc.Total,
		Cells:   make([]treemap.Cell, 0, len(doc.Cells)),
	}
	seen := make(map[string]bool, len(doc.Cells))
	for i, c := range doc.Cells {
		if c.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "cell %d: missing id", i)
		}
		if seen[c.ID] {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "cell %d: duplicate id %q", i, c.ID)
		}
		if c.Parent != "" && !seen[c.Parent] {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "cell %q: parent %q must come first", c.ID, c.Parent)
		}
		r := c.Rect.rect()
		if !finite(r.X, r.Y, r.W, r.H) || r.W < 0 || r.H < 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "cell %q: bad rectangle %+v", c.ID, c.Rect)
		}
		if err := errors.ValidateWeight(c.Value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWeight, err, "cell %q", c.ID)
		}
		seen[c.ID] = true

		ch.Cells = append(ch.Cells, treemap.Cell{
			Item: treemap.Item{
				ID:     c.ID,
				Weight: c.Value,
				Label:  c.Label,
				Meta: map[string]any{
					chart.MetaValue: c.Value,
					chart.MetaCount: c.Count,
					chart.MetaShare: c.Share,
				},
			},
			Rect:   r,
			Depth:  c.Depth,
			Parent: c.Parent,
		})
	}
	return ch, nil
}

// ImportLayout reads a layout document from the file at path.
func ImportLayout(path string) (*chart.Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadLayout(f)
}

func (r Rect) rect() treemap.Rect {
	return treemap.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
