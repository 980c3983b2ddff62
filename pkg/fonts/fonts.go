// Package fonts provides the typefaces used by the treemap renderers.
//
// SVG output names a CSS font stack and lets the viewer pick. Raster output
// needs real glyphs, so the Go fonts from golang.org/x/image are compiled
// into the binary and parsed once on first use.
package fonts

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font stack used in SVG output.
const FontFamily = `'Inter', 'Helvetica Neue', Arial, 'Go', sans-serif`

// Weight selects a face variant.
type Weight int

const (
	Regular Weight = iota
	Bold
)

var (
	parseOnce sync.Once
	parsed    map[Weight]*truetype.Font
	parseErr  error

	facesMu sync.Mutex
	faces   = make(map[faceKey]font.Face)
)

type faceKey struct {
	weight Weight
	size   float64
}

// Face returns a cached face of the given weight at size points.
// Sizes are rounded to a tenth of a point so repeated calls share faces.
func Face(weight Weight, size float64) (font.Face, error) {
	parseOnce.Do(func() {
		parsed = make(map[Weight]*truetype.Font, 2)
		for w, ttf := range map[Weight][]byte{Regular: goregular.TTF, Bold: gobold.TTF} {
			f, err := truetype.Parse(ttf)
			if err != nil {
				parseErr = fmt.Errorf("parse embedded font: %w", err)
				return
			}
			parsed[w] = f
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}

	key := faceKey{weight: weight, size: math.Round(size*10) / 10}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}
	ttf, ok := parsed[weight]
	if !ok {
		ttf = parsed[Regular]
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: key.size, Hinting: font.HintingFull})
	faces[key] = f
	return f, nil
}
