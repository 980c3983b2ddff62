package spend_test

import (
	"fmt"

	"github.com/matzehuels/spendmap/pkg/spend"
)

func ExampleAggregate() {
	nodes, err := spend.Aggregate([]spend.Record{
		{Category: "A", Subcategory: "X", Value: 100},
		{Category: "A", Subcategory: "Y", Value: 200},
		{Category: "B", Subcategory: "Z", Value: 50},
	})
	if err != nil {
		panic(err)
	}
	for _, n := range nodes {
		fmt.Printf("%s %.0f (%d)\n", n.Label, n.Total, n.Count)
		for _, c := range n.Children {
			fmt.Printf("  %s %.0f\n", c.Label, c.Total)
		}
	}
	// Output:
	// A 300 (2)
	//   Y 200
	//   X 100
	// B 50 (1)
	//   Z 50
}
