// Package spend groups procurement line items into a category → subcategory
// hierarchy.
//
// [Aggregate] is the entry point. It validates every record, groups by
// category and subcategory, and returns the categories largest first with
// their subcategories sorted the same way. The result is ready to feed to
// the treemap layout engine level by level.
//
//	nodes, err := spend.Aggregate([]spend.Record{
//	    {Category: "IT", Subcategory: "Laptops", Value: 1200},
//	    {Category: "IT", Subcategory: "Licenses", Value: 300},
//	})
package spend

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/matzehuels/spendmap/pkg/errors"
)

// Uncategorized is the label given to records with a blank category or
// subcategory.
const Uncategorized = "Uncategorized"

// Record is one procurement line item.
type Record struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Value       float64 `json:"value"`
}

// Node is an aggregated category or subcategory.
//
// For a node with children, Total is the sum of the children's totals and
// Count is the sum of their counts.
type Node struct {
	Label    string  `json:"label"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Children []Node  `json:"children,omitempty"`
}

// Share returns the node's fraction of total, or 0 when total is not positive.
func (n Node) Share(total float64) float64 {
	if total <= 0 {
		return 0
	}
	return n.Total / total
}

// Aggregate groups records by category and subcategory.
//
// Categories are sorted by descending total with ties broken by label;
// subcategories within a category follow the same order. Records with a
// negative, NaN or infinite value are rejected with an INVALID_WEIGHT error,
// as are inputs whose totals overflow float64.
// Zero-valued records are kept and counted. Labels are trimmed and blank
// labels become [Uncategorized].
//
// Empty input returns nil and no error. The input slice is not modified.
func Aggregate(records []Record) ([]Node, error) {
	if len(records) == 0 {
		return nil, nil
	}

	type bucket struct {
		total float64
		count int
	}
	groups := make(map[string]map[string]*bucket)

	for i, r := range records {
		if err := errors.ValidateWeight(r.Value); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"record %d (%s/%s): value must be finite and non-negative, got %v",
				i, r.Category, r.Subcategory, r.Value)
		}
		cat, err := normalizeLabel(r.Category)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %d category", i)
		}
		sub, err := normalizeLabel(r.Subcategory)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %d subcategory", i)
		}

		subs, ok := groups[cat]
		if !ok {
			subs = make(map[string]*bucket)
			groups[cat] = subs
		}
		b, ok := subs[sub]
		if !ok {
			b = &bucket{}
			subs[sub] = b
		}
		b.total += r.Value
		b.count++
	}

	nodes := make([]Node, 0, len(groups))
	for cat, subs := range groups {
		children := make([]Node, 0, len(subs))
		for sub, b := range subs {
			children = append(children, Node{Label: sub, Total: b.total, Count: b.count})
		}
		SortNodes(children)

		nodes = append(nodes, Node{
			Label:    cat,
			Total:    lo.SumBy(children, func(n Node) float64 { return n.Total }),
			Count:    lo.SumBy(children, func(n Node) int { return n.Count }),
			Children: children,
		})
	}
	SortNodes(nodes)

	for _, n := range nodes {
		if math.IsInf(n.Total, 0) {
			return nil, errors.New(errors.ErrCodeInvalidWeight,
				"category %q: total overflows float64", n.Label)
		}
	}
	if math.IsInf(Total(nodes), 0) {
		return nil, errors.New(errors.ErrCodeInvalidWeight, "grand total overflows float64")
	}
	return nodes, nil
}

// SortNodes orders nodes by descending Total, then ascending Label.
func SortNodes(nodes []Node) {
	slices.SortStableFunc(nodes, func(a, b Node) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
}

// Total returns the sum of the nodes' totals.
func Total(nodes []Node) float64 {
	return lo.SumBy(nodes, func(n Node) float64 { return n.Total })
}

func normalizeLabel(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := errors.ValidateLabel(s); err != nil {
		return "", err
	}
	if s == "" {
		return Uncategorized, nil
	}
	return s, nil
}
