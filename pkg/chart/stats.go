package chart

import (
	"github.com/spf13/cast"

	"github.com/matzehuels/spendmap/pkg/treemap"
)

// Stats are the monetary figures behind a cell.
type Stats struct {
	Value float64
	Count int
	Share float64
}

// StatsOf reads the figures [Build] stores in a cell's Meta. Cells built
// elsewhere fall back to their weight and its share of total. Meta values
// decoded from JSON arrive as float64 or strings, so they are coerced.
func StatsOf(c treemap.Cell, total float64) Stats {
	s := Stats{Value: c.Item.Weight}
	if v, ok := c.Item.Meta[MetaValue]; ok {
		s.Value = cast.ToFloat64(v)
	}
	s.Count = cast.ToInt(c.Item.Meta[MetaCount])
	if v, ok := c.Item.Meta[MetaShare]; ok {
		s.Share = cast.ToFloat64(v)
	} else if total > 0 {
		s.Share = s.Value / total
	}
	return s
}
