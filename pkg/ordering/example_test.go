package ordering_test

import (
	"fmt"

	"github.com/matzehuels/flowlayout/pkg/dag"
	"github.com/matzehuels/flowlayout/pkg/ordering"
)

func ExampleSweep() {
	// Two producers wired to consumers in opposite order.
	g := dag.New(
		[]dag.Node{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}},
		[]dag.Edge{{From: 1, To: 4}, {From: 2, To: 3}},
	)
	cols := dag.Columns{{1, 2}, {3, 4}}

	ordered := ordering.Sweep{}.Order(g, cols)
	fmt.Println("before:", cols, "crossings:", dag.CountCrossings(g, cols))
	fmt.Println("after: ", ordered, "crossings:", dag.CountCrossings(g, ordered))
	// Output:
	// before: [[1 2] [3 4]] crossings: 1
	// after:  [[2 1] [3 4]] crossings: 0
}

func ExampleBranchOrder() {
	// 2 feeds input 0 of node 3, 1 feeds input 1.
	edges := []dag.Edge{
		{From: 1, To: 3, ToPort: 1},
		{From: 2, To: 3, ToPort: 0},
	}
	fmt.Println(ordering.BranchOrder([]int{1, 2, 3}, edges))
	// Output: [2 1 3]
}
