// Package treemap implements a squarified treemap layout engine.
//
// # Overview
//
// [Layout] takes a list of weighted items and a rectangular region and
// returns one rectangle per item. Rectangle areas are proportional to the
// item weights, the rectangles tile the region without gaps or overlaps, and
// the row grouping keeps rectangles close to square.
//
// # Algorithm
//
// Items are consumed in the order given. The engine cuts a strip along the
// longer side of the remaining region and greedily adds items to it while
// that does not make the strip's worst aspect ratio worse. When a strip is
// closed its thickness is its share of the remaining weight times the
// remaining extent; items inside it split the strip's length in proportion
// to their weights. The region then shrinks by the strip and the process
// repeats.
//
//	cells, err := treemap.Layout([]treemap.Item{
//	    {ID: "hardware", Weight: 40},
//	    {ID: "services", Weight: 30},
//	}, treemap.Rect{W: 800, H: 600})
//
// # Row Grouping
//
// A strip is never closed while it holds a single item, so every strip but
// the last has at least two members. [Classic] lifts that minimum.
// [WithMinRowSize] and [WithAspectCutoff] tune when a strip may be closed.
// [Dashboard] applies the preset used by the procurement dashboard.
//
// # Nesting
//
// The engine lays out one level. Hierarchies are handled by the caller,
// which runs Layout again inside each parent's rectangle; see package chart.
package treemap
