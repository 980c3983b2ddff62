package treemap

import (
	"math"

	"github.com/matzehuels/spendmap/pkg/errors"
)

// Item is a weighted input to [Layout].
type Item struct {
	ID     string
	Weight float64
	Label  string
	Meta   map[string]any
}

// Cell pairs an item with the rectangle it was assigned.
// Depth and Parent are left zero by [Layout]; nesting callers fill them in.
type Cell struct {
	Item   Item
	Rect   Rect
	Depth  int
	Parent string
}

// Layout packs items into region using the squarified treemap algorithm.
//
// Items are placed in the order given; callers that want the usual
// largest-first look must sort beforehand. Each cell's area is proportional
// to its item's weight and the cells tile region exactly. Output cells are in
// input order, one per item. Zero-weight items get a zero-area cell at the
// far corner of region.
//
// Layout returns an INVALID_REGION error when region has no area and an
// INVALID_WEIGHT error when any weight is negative, NaN or infinite, or when
// the weights sum past the float64 range. When the total weight is zero it
// returns no cells and no error.
//
// Layout keeps no state between calls and is safe for concurrent use.
func Layout(items []Item, region Rect, opts ...Option) ([]Cell, error) {
	if !region.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidRegion,
			"region must have positive finite size, got %gx%g", region.W, region.H)
	}

	var total float64
	for i, it := range items {
		if err := errors.ValidateWeight(it.Weight); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"item %d (%q): weight must be finite and non-negative, got %v", i, it.ID, it.Weight)
		}
		total += it.Weight
	}
	if math.IsInf(total, 0) {
		return nil, errors.New(errors.ErrCodeInvalidWeight,
			"total weight of %d items overflows float64", len(items))
	}
	if total <= 0 {
		return nil, nil
	}

	cells := make([]Cell, len(items))
	placed := make([]int, 0, len(items))
	corner := Rect{X: region.Right(), Y: region.Bottom()}
	for i, it := range items {
		cells[i].Item = it
		if it.Weight > 0 {
			placed = append(placed, i)
		} else {
			cells[i].Rect = corner
		}
	}

	s := squarifier{cfg: newConfig(opts), items: items, cells: cells}
	s.run(placed, region)
	return cells, nil
}

// squarifier holds the per-call working state of one layout pass.
type squarifier struct {
	cfg   config
	items []Item
	cells []Cell
}

// strip describes where the current row goes inside the remaining region.
// When wide is true the row is a column on the left edge and its items are
// stacked top to bottom; otherwise it is a band along the top edge with
// items placed left to right.
type strip struct {
	wide   bool
	extent float64 // size of the remaining region across the strip
	length float64 // size of the remaining region along the strip
}

func stripFor(r Rect) strip {
	if r.W > r.H {
		return strip{wide: true, extent: r.W, length: r.H}
	}
	return strip{wide: false, extent: r.H, length: r.W}
}

// worst returns the largest aspect ratio among the items of a row holding
// sum weight whose smallest and largest members weigh lo and hi.
func (st strip) worst(sum, lo, hi, remaining float64) float64 {
	thick := sum / remaining * st.extent
	ratio := func(w float64) float64 {
		l := w / sum * st.length
		return math.Max(thick/l, l/thick)
	}
	return math.Max(ratio(lo), ratio(hi))
}

func (s *squarifier) run(order []int, region Rect) {
	// suffix[k] is the weight of order[k:], so the remaining weight never
	// drifts from repeated subtraction.
	suffix := make([]float64, len(order)+1)
	for k := len(order) - 1; k >= 0; k-- {
		suffix[k] = suffix[k+1] + s.items[order[k]].Weight
	}

	rem := region
	for start := 0; start < len(order); {
		st := stripFor(rem)
		remaining := suffix[start]

		first := s.items[order[start]].Weight
		sum, lo, hi := first, first, first
		cur := st.worst(sum, lo, hi, remaining)
		end := start + 1

		for end < len(order) {
			w := s.items[order[end]].Weight
			nSum, nLo, nHi := sum+w, math.Min(lo, w), math.Max(hi, w)
			next := st.worst(nSum, nLo, nHi, remaining)
			if next > cur && end-start >= s.cfg.minRowSize && next > s.cfg.cutoff {
				break
			}
			sum, lo, hi, cur = nSum, nLo, nHi, next
			end++
		}

		last := end == len(order)
		rem = s.place(order[start:end], sum, remaining, rem, st, last)
		start = end
	}
}

// place assigns rectangles to one row and returns what is left of rem.
func (s *squarifier) place(row []int, sum, remaining float64, rem Rect, st strip, last bool) Rect {
	thick := st.extent
	if !last {
		thick = sum / remaining * st.extent
	}

	origin, span := rem.Y, rem.H
	if !st.wide {
		origin, span = rem.X, rem.W
	}

	pos := origin
	var acc float64
	for j, idx := range row {
		acc += s.items[idx].Weight
		next := origin + acc/sum*span
		if j == len(row)-1 {
			next = origin + span
		}

		var r Rect
		if st.wide {
			r = Rect{X: rem.X, Y: pos, W: thick, H: next - pos}
		} else {
			r = Rect{X: pos, Y: rem.Y, W: next - pos, H: thick}
		}
		s.cells[idx].Rect = r
		pos = next
	}

	if last {
		return Rect{X: rem.Right(), Y: rem.Bottom()}
	}
	if st.wide {
		return Rect{X: rem.X + thick, Y: rem.Y, W: rem.W - thick, H: rem.H}
	}
	return Rect{X: rem.X, Y: rem.Y + thick, W: rem.W, H: rem.H - thick}
}
