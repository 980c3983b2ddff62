package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/spendmap/pkg/spend"
	"github.com/matzehuels/spendmap/pkg/treemap"
)

func sampleNodes(t *testing.T) []spend.Node {
	t.Helper()
	nodes, err := spend.Aggregate([]spend.Record{
		{Category: "IT", Subcategory: "Laptops", Value: 600},
		{Category: "IT", Subcategory: "Licenses", Value: 200},
		{Category: "Facilities", Subcategory: "Rent", Value: 300},
		{Category: "Facilities", Subcategory: "Cleaning", Value: 100},
		{Category: "Travel", Subcategory: "Flights", Value: 50},
	})
	require.NoError(t, err)
	return nodes
}

func TestBuildStructure(t *testing.T) {
	canvas := treemap.Rect{W: 800, H: 500}
	cells, err := Build(sampleNodes(t), canvas, DefaultOptions())
	require.NoError(t, err)

	ids := make([]string, len(cells))
	for i, c := range cells {
		ids[i] = c.Item.ID
	}
	assert.Equal(t, []string{
		"IT", "IT/Laptops", "IT/Licenses",
		"Facilities", "Facilities/Rent", "Facilities/Cleaning",
		"Travel", "Travel/Flights",
	}, ids)

	for _, c := range cells {
		switch c.Depth {
		case DepthCategory:
			assert.Empty(t, c.Parent)
		case DepthSubcategory:
			assert.NotEmpty(t, c.Parent)
		default:
			t.Fatalf("unexpected depth %d", c.Depth)
		}
	}
}

func TestBuildChildrenInsideParent(t *testing.T) {
	opts := DefaultOptions()
	cells, err := Build(sampleNodes(t), treemap.Rect{W: 800, H: 500}, opts)
	require.NoError(t, err)

	for _, parent := range AtDepth(cells, DepthCategory) {
		inner := parent.Rect.Inset(opts.Padding+opts.Header, opts.Padding, opts.Padding, opts.Padding)
		kids := Children(cells, parent.Item.ID)
		var area float64
		for _, k := range kids {
			assert.True(t, inner.Contains(k.Rect, 1e-6), "%s escapes %s", k.Item.ID, parent.Item.ID)
			area += k.Rect.Area()
		}
		if len(kids) > 0 {
			assert.InEpsilon(t, inner.Area(), area, 1e-6)
		}
	}
}

func TestBuildCategoryAreasProportional(t *testing.T) {
	canvas := treemap.Rect{W: 1000, H: 400}
	nodes := sampleNodes(t)
	cells, err := Build(nodes, canvas, DefaultOptions())
	require.NoError(t, err)

	grand := spend.Total(nodes)
	for _, c := range AtDepth(cells, DepthCategory) {
		want := c.Item.Weight / grand * canvas.Area()
		assert.InDelta(t, want, c.Rect.Area(), canvas.Area()*1e-6, c.Item.ID)
	}
}

func TestBuildMeta(t *testing.T) {
	cells, err := Build(sampleNodes(t), treemap.Rect{W: 800, H: 500}, DefaultOptions())
	require.NoError(t, err)

	it := cells[0]
	assert.Equal(t, "IT", it.Item.ID)
	assert.Equal(t, 800.0, it.Item.Meta[MetaValue])
	assert.Equal(t, 2, it.Item.Meta[MetaCount])
	assert.InDelta(t, 800.0/1250.0, it.Item.Meta[MetaShare], 1e-12)

	laptops := cells[1]
	assert.Equal(t, "Laptops", laptops.Item.Label)
	assert.InDelta(t, 600.0/1250.0, laptops.Item.Meta[MetaShare], 1e-12)
}

func TestBuildCollapsedCategoryHasNoChildren(t *testing.T) {
	// A header taller than the canvas leaves no room for children.
	opts := Options{Padding: 2, Header: 100}
	cells, err := Build(sampleNodes(t), treemap.Rect{W: 300, H: 80}, opts)
	require.NoError(t, err)

	assert.Len(t, cells, 3)
	assert.Empty(t, AtDepth(cells, DepthSubcategory))
}

func TestBuildZeroPadding(t *testing.T) {
	canvas := treemap.Rect{W: 400, H: 300}
	cells, err := Build(sampleNodes(t), canvas, Options{})
	require.NoError(t, err)

	for _, parent := range AtDepth(cells, DepthCategory) {
		var area float64
		for _, k := range Children(cells, parent.Item.ID) {
			area += k.Rect.Area()
		}
		assert.InEpsilon(t, parent.Rect.Area(), area, 1e-6, parent.Item.ID)
	}
}

func TestBuildMaxCategories(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxCategories = 1
	cells, err := Build(sampleNodes(t), treemap.Rect{W: 800, H: 500}, opts)
	require.NoError(t, err)

	top := AtDepth(cells, DepthCategory)
	require.Len(t, top, 2)
	assert.Equal(t, "IT", top[0].Item.ID)
	assert.Equal(t, spend.Other, top[1].Item.ID)
	assert.Equal(t, 450.0, top[1].Item.Weight)

	kids := Children(cells, spend.Other)
	require.Len(t, kids, 2)
	assert.Equal(t, "Other/Facilities", kids[0].Item.ID)
	assert.Equal(t, "Other/Travel", kids[1].Item.ID)
}

func TestBuildDashboardLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.Layout = []treemap.Option{treemap.Dashboard()}
	canvas := treemap.Rect{W: 800, H: 500}

	cells, err := Build(sampleNodes(t), canvas, opts)
	require.NoError(t, err)

	var area float64
	for _, c := range AtDepth(cells, DepthCategory) {
		area += c.Rect.Area()
	}
	assert.InEpsilon(t, canvas.Area(), area, 1e-6)
}

func TestBuildEmpty(t *testing.T) {
	cells, err := Build(nil, treemap.Rect{W: 10, H: 10}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestBuildInvalidCanvas(t *testing.T) {
	_, err := Build(sampleNodes(t), treemap.Rect{W: 0, H: 10}, DefaultOptions())
	require.Error(t, err)
}

func TestChildID(t *testing.T) {
	tests := []struct {
		parent, label, want string
	}{
		{"", "IT", "IT"},
		{"IT", "Laptops", "IT/Laptops"},
		{"", "IT/Software", "IT%2FSoftware"},
		{"IT", "A/B", "IT/A%2FB"},
		{"", "100%", "100%25"},
		{"", "IT%2FSoftware", "IT%252FSoftware"},
		{"R&D", "Lab <1>", "R&D/Lab <1>"},
	}
	for _, tt := range tests {
		if got := ChildID(tt.parent, tt.label); got != tt.want {
			t.Errorf("ChildID(%q, %q) = %q, want %q", tt.parent, tt.label, got, tt.want)
		}
	}
}

func TestBuildIDsUniqueWithSlashLabels(t *testing.T) {
	nodes, err := spend.Aggregate([]spend.Record{
		{Category: "IT", Subcategory: "Software", Value: 300},
		{Category: "IT", Subcategory: "Hardware", Value: 100},
		{Category: "IT/Software", Subcategory: "Licenses", Value: 200},
		{Category: "IT%2FSoftware", Subcategory: "Support", Value: 50},
	})
	require.NoError(t, err)
	ch, err := New(nodes, treemap.Rect{W: 800, H: 500}, DefaultOptions())
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, c := range ch.Cells {
		seen[c.Item.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "id %q is used by %d cells", id, n)
	}

	sub, ok := ch.Find("IT/Software")
	require.True(t, ok)
	assert.Equal(t, "Software", sub.Item.Label)
	assert.Equal(t, "IT", sub.Parent)

	cat, ok := ch.Find("IT%2FSoftware")
	require.True(t, ok)
	assert.Equal(t, "IT/Software", cat.Item.Label)
	assert.Equal(t, DepthCategory, cat.Depth)
	assert.Len(t, Children(ch.Cells, cat.Item.ID), 1)
	assert.Equal(t, "IT%2FSoftware/Licenses", Children(ch.Cells, cat.Item.ID)[0].Item.ID)
}

func TestNew(t *testing.T) {
	canvas := treemap.Rect{W: 640, H: 480}
	ch, err := New(sampleNodes(t), canvas, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, canvas, ch.Canvas)
	assert.Equal(t, 1250.0, ch.Total)
	assert.Equal(t, DefaultHeader, ch.Header)

	cell, ok := ch.Find("Facilities/Rent")
	require.True(t, ok)
	assert.Equal(t, "Facilities", cell.Parent)
	assert.True(t, ch.HasChildren("IT"))
	assert.False(t, ch.HasChildren("IT/Laptops"))

	_, ok = ch.Find("missing")
	assert.False(t, ok)
}

func TestStatsOf(t *testing.T) {
	built := treemap.Cell{Item: treemap.Item{
		ID: "IT", Weight: 800,
		Meta: map[string]any{MetaValue: 800.0, MetaCount: 2, MetaShare: 0.64},
	}}
	assert.Equal(t, Stats{Value: 800, Count: 2, Share: 0.64}, StatsOf(built, 1250))

	decoded := treemap.Cell{Item: treemap.Item{
		ID: "IT", Weight: 800,
		Meta: map[string]any{MetaValue: "800", MetaCount: float64(2)},
	}}
	st := StatsOf(decoded, 1000)
	assert.Equal(t, 800.0, st.Value)
	assert.Equal(t, 2, st.Count)
	assert.InDelta(t, 0.8, st.Share, 1e-12)

	bare := treemap.Cell{Item: treemap.Item{ID: "x", Weight: 25}}
	assert.Equal(t, Stats{Value: 25, Share: 0.25}, StatsOf(bare, 100))
	assert.Equal(t, Stats{Value: 25}, StatsOf(bare, 0))
}
