package spend

import (
	"fmt"

	"github.com/samber/lo"
)

// Other is the label of the category that collects folded categories.
const Other = "Other"

// Fold keeps the first keep nodes and merges the rest into a single node
// labelled [Other] whose children are the merged nodes (without their own
// children). If a kept node is already called Other the merged node is
// named "Other (N more)" instead. The input is expected to be sorted; the
// result is re-sorted so the folded node lands at its proper position.
// keep <= 0 or a list that already fits returns nodes unchanged.
func Fold(nodes []Node, keep int) []Node {
	if keep <= 0 || len(nodes) <= keep+1 {
		return nodes
	}

	head, tail := nodes[:keep], nodes[keep:]
	children := lo.Map(tail, func(n Node, _ int) Node {
		return Node{Label: n.Label, Total: n.Total, Count: n.Count}
	})

	label := Other
	if lo.ContainsBy(head, func(n Node) bool { return n.Label == Other }) {
		label = fmt.Sprintf("%s (%d more)", Other, len(tail))
	}

	out := make([]Node, 0, keep+1)
	out = append(out, head...)
	out = append(out, Node{
		Label:    label,
		Total:    Total(children),
		Count:    lo.SumBy(children, func(n Node) int { return n.Count }),
		Children: children,
	})
	SortNodes(out)
	return out
}
