// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag_test

import (
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/dag"
	"github.com/petenewcomb/tsg-go/internal/testgen"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/topo"
	"pgregory.net/rapid"
)

func TestBuildInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := testgen.DefaultConfig.Shape.Draw(t, "shape")
		shape := dag.Shape{Roots: s.Roots, Depth: s.Depth, Branch: s.Branch}
		b := dag.NewBuilder(rand.NewSource(testgen.Seed(t)))

		g, err := b.Build(s.TaskCount, shape)
		require.NoError(t, err)
		require.Len(t, g.Nodes, s.TaskCount)
		require.Equal(t, s.Depth, g.Depth())

		placed := 0
		for level, members := range g.Levels {
			require.NotEmpty(t, members, "level %d", level)
			for _, i := range members {
				require.Equal(t, level, g.Nodes[i].Level)
			}
			placed += len(members)
		}
		require.Equal(t, s.TaskCount, placed)
		for i := range s.Roots {
			require.Equal(t, 0, g.Nodes[i].Level)
		}

		seen := make(map[dag.Edge]bool)
		for _, e := range g.Edges {
			require.Less(t, g.Nodes[e.Parent].Level, g.Nodes[e.Child].Level)
			require.False(t, seen[e], "duplicate edge %v", e)
			seen[e] = true
			require.Contains(t, g.Nodes[e.Child].Parents, e.Parent)
		}
		for i := range g.Nodes {
			require.LessOrEqual(t, len(g.Nodes[i].Children), s.Branch)
		}

		_, err = topo.Sort(g.Directed())
		require.NoError(t, err)
	})
}

func TestBuildPreconditions(t *testing.T) {
	chk := require.New(t)
	b := dag.NewBuilder(rand.NewSource(1))
	for _, tc := range []struct {
		taskCount int
		shape     dag.Shape
	}{
		{taskCount: 12, shape: dag.Shape{Roots: 5, Depth: 8, Branch: 4}},
		{taskCount: 10, shape: dag.Shape{Roots: 0, Depth: 3, Branch: 2}},
		{taskCount: 10, shape: dag.Shape{Roots: 2, Depth: 0, Branch: 2}},
		{taskCount: 10, shape: dag.Shape{Roots: 2, Depth: 3, Branch: -1}},
	} {
		g, err := b.Build(tc.taskCount, tc.shape)
		chk.ErrorIs(err, dag.ErrInvalidConfiguration, "%+v", tc)
		chk.Nil(g)
	}
}

func TestBuildSingleLevel(t *testing.T) {
	chk := require.New(t)
	g, err := dag.NewBuilder(rand.NewSource(1)).Build(6, dag.Shape{Roots: 2, Depth: 1, Branch: 3})
	chk.NoError(err)
	chk.Len(g.Levels, 1)
	chk.Len(g.Levels[0], 6)
	chk.Empty(g.Edges)
	chk.Len(g.Leaves(), 6)
}

func TestBuildNoBranching(t *testing.T) {
	chk := require.New(t)
	g, err := dag.NewBuilder(rand.NewSource(5)).Build(12, dag.Shape{Roots: 3, Depth: 4, Branch: 0})
	chk.NoError(err)
	chk.Empty(g.Edges)
	chk.Len(g.Leaves(), 12)
}

func TestBuildReproducible(t *testing.T) {
	chk := require.New(t)
	shape := dag.DefaultShape
	a, err := dag.NewBuilder(rand.NewSource(9)).Build(30, shape)
	chk.NoError(err)
	b, err := dag.NewBuilder(rand.NewSource(9)).Build(30, shape)
	chk.NoError(err)
	chk.Equal(a, b)
}

func namedTasks(n int) tsg.TaskSet {
	ts := make(tsg.TaskSet, n)
	for i := range ts {
		ts[i] = tsg.NewTask(tsg.TaskSpec{WCET: 10, Period: 100, PE: i % 2})
	}
	ts.Rename()
	return ts
}

func TestMarshalDOT(t *testing.T) {
	chk := require.New(t)
	ts := namedTasks(20)
	g, err := dag.NewBuilder(rand.NewSource(3)).Build(len(ts), dag.DefaultShape)
	chk.NoError(err)

	out, err := dag.MarshalDOT(g, ts, "taskset")
	chk.NoError(err)
	text := string(out)
	chk.Contains(text, "digraph taskset {")
	chk.Contains(text, "fontname=Ubuntu")
	for _, e := range g.Edges {
		chk.Contains(text, fmt.Sprintf("%s -> %s", ts[e.Parent].Name, ts[e.Child].Name))
	}

	_, err = dag.MarshalDOT(g, ts[:3], "short")
	chk.ErrorIs(err, dag.ErrInvalidConfiguration)
}

func TestMarshalXML(t *testing.T) {
	chk := require.New(t)
	ts := namedTasks(20)
	g, err := dag.NewBuilder(rand.NewSource(4)).Build(len(ts), dag.Shape{Roots: 2, Depth: 4, Branch: 3})
	chk.NoError(err)

	out, err := dag.MarshalXML(g, ts, "taskset")
	chk.NoError(err)
	chk.True(strings.HasPrefix(string(out), xml.Header))

	var doc struct {
		Name  string `xml:"name,attr"`
		Tasks []struct {
			Name  string `xml:"name,attr"`
			Specs []struct {
				Name  string `xml:"name,attr"`
				Value string `xml:",chardata"`
			} `xml:"spec"`
		} `xml:"task"`
		Edges []struct {
			Src  string `xml:"srcTask,attr"`
			Name string `xml:"name,attr"`
			Dst  string `xml:"dstTask,attr"`
		} `xml:"edges>edge"`
	}
	chk.NoError(xml.Unmarshal(out, &doc))
	chk.Equal("taskset", doc.Name)
	chk.Len(doc.Tasks, 20)
	chk.Equal("T1", doc.Tasks[1].Name)
	chk.Equal("WCET", doc.Tasks[1].Specs[1].Name)
	chk.Equal("10", doc.Tasks[1].Specs[1].Value)
	chk.Equal("1", doc.Tasks[1].Specs[4].Value)
	chk.Len(doc.Edges, len(g.Edges))
	for _, e := range doc.Edges {
		var p, c int
		_, err := fmt.Sscanf(e.Name, "e%d,%d", &p, &c)
		chk.NoError(err)
		chk.Equal(ts[p].Name, e.Src)
		chk.Equal(ts[c].Name, e.Dst)
	}
}
