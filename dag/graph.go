// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Node holds the graph links of the task with the same index.
type Node struct {
	Index    int
	Level    int
	Parents  []int
	Children []int
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Edge is a precedence constraint from Parent to Child, both task indices.
type Edge struct {
	Parent int
	Child  int
}

// Graph is a leveled precedence graph over tasks 0..len(Nodes)-1.
type Graph struct {
	// Nodes is indexed by task index.
	Nodes []Node
	// Levels lists the task indices at each level. Level 0 holds the roots.
	Levels [][]int
	// Edges lists every edge in construction order.
	Edges []Edge
}

func newGraph(taskCount, depth int) *Graph {
	g := &Graph{
		Nodes:  make([]Node, taskCount),
		Levels: make([][]int, depth),
	}
	for i := range g.Nodes {
		g.Nodes[i].Index = i
	}
	return g
}

func (g *Graph) place(index, level int) {
	g.Nodes[index].Level = level
	g.Levels[level] = append(g.Levels[level], index)
}

func (g *Graph) link(parent, child int) {
	g.Nodes[parent].Children = append(g.Nodes[parent].Children, child)
	g.Nodes[child].Parents = append(g.Nodes[child].Parents, parent)
	g.Edges = append(g.Edges, Edge{Parent: parent, Child: child})
}

// Depth returns the number of levels.
func (g *Graph) Depth() int {
	return len(g.Levels)
}

// Leaves returns the indices of nodes without children, in index order.
func (g *Graph) Leaves() []int {
	var leaves []int
	for i := range g.Nodes {
		if g.Nodes[i].IsLeaf() {
			leaves = append(leaves, i)
		}
	}
	return leaves
}

// Directed returns a gonum view of the graph whose node IDs are task indices.
func (g *Graph) Directed() *simple.DirectedGraph {
	d := simple.NewDirectedGraph()
	for i := range g.Nodes {
		d.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges {
		d.SetEdge(d.NewEdge(simple.Node(int64(e.Parent)), simple.Node(int64(e.Child))))
	}
	return d
}
