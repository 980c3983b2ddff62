// Package styles holds the presentation rules shared by the treemap sinks:
// the size-threshold [Rules] table that decides which text a cell shows, the
// category [Palette], text fitting helpers and the [Simple] SVG style.
//
// Nothing in this package affects geometry. Cells arrive fully laid out and
// styles only decide how they look.
package styles
