// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/petenewcomb/tsg-go"
)

func checkTasks(g *Graph, ts tsg.TaskSet) error {
	if len(ts) != len(g.Nodes) {
		return errors.Wrapf(ErrInvalidConfiguration, "graph has %d nodes but task set has %d tasks", len(g.Nodes), len(ts))
	}
	return nil
}

type taskNode struct {
	id   int64
	name string
}

func (n taskNode) ID() int64 {
	return n.id
}

func (n taskNode) DOTID() string {
	return n.name
}

type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute {
	return a
}

type dotGraph struct {
	*simple.DirectedGraph
}

func (dotGraph) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return attributes(nil), attributes{{Key: "fontname", Value: "Ubuntu"}}, attributes(nil)
}

// MarshalDOT renders g as a Graphviz digraph whose nodes carry the task
// names.
func MarshalDOT(g *Graph, ts tsg.TaskSet, name string) ([]byte, error) {
	if err := checkTasks(g, ts); err != nil {
		return nil, err
	}
	d := simple.NewDirectedGraph()
	nodes := make([]graph.Node, len(ts))
	for i, t := range ts {
		nodes[i] = taskNode{id: int64(i), name: t.Name}
		d.AddNode(nodes[i])
	}
	for _, e := range g.Edges {
		d.SetEdge(d.NewEdge(nodes[e.Parent], nodes[e.Child]))
	}
	return dot.Marshal(dotGraph{d}, name, "", "\t")
}

type xmlDAG struct {
	XMLName xml.Name  `xml:"mrdag"`
	Name    string    `xml:"name,attr"`
	Tasks   []xmlTask `xml:"task"`
	Edges   []xmlEdge `xml:"edges>edge"`
}

type xmlTask struct {
	Name  string    `xml:"name,attr"`
	Specs []xmlSpec `xml:"spec"`
}

type xmlSpec struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlEdge struct {
	SrcTask string `xml:"srcTask,attr"`
	Name    string `xml:"name,attr"`
	DstTask string `xml:"dstTask,attr"`
}

func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalXML renders g and the task parameters as an mrdag document. Edges
// are named e<parent>,<child> by task index.
func MarshalXML(g *Graph, ts tsg.TaskSet, name string) ([]byte, error) {
	if err := checkTasks(g, ts); err != nil {
		return nil, err
	}
	doc := xmlDAG{Name: name, Tasks: make([]xmlTask, len(ts))}
	for i, t := range ts {
		doc.Tasks[i] = xmlTask{
			Name: t.Name,
			Specs: []xmlSpec{
				{Name: "BCET", Value: formatTime(t.BCET)},
				{Name: "WCET", Value: formatTime(t.WCET)},
				{Name: "Period", Value: formatTime(t.Period)},
				{Name: "Deadline", Value: formatTime(t.Deadline)},
				{Name: "PE", Value: strconv.Itoa(t.PE)},
			},
		}
	}
	for i := range g.Nodes {
		for _, child := range g.Nodes[i].Children {
			doc.Edges = append(doc.Edges, xmlEdge{
				SrcTask: ts[i].Name,
				Name:    fmt.Sprintf("e%d,%d", i, child),
				DstTask: ts[child].Name,
			})
		}
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal mrdag")
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
