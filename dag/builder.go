// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package dag

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/petenewcomb/tsg-go/internal/cerr"
)

const ErrInvalidConfiguration = cerr.InvalidConfiguration

// Shape controls the size and fan-out of a generated graph.
type Shape struct {
	// Roots is the number of tasks at level 0.
	Roots int `toml:"roots"`
	// Depth is the number of levels.
	Depth int `toml:"depth"`
	// Branch is the maximum number of children per node.
	Branch int `toml:"branch"`
}

// DefaultShape matches the defaults of the original command-line tool.
var DefaultShape = Shape{Roots: 5, Depth: 8, Branch: 4}

// Validate checks the shape against a task count.
func (s Shape) Validate(taskCount int) error {
	switch {
	case s.Roots < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "root count %d < 1", s.Roots)
	case s.Depth < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "depth %d < 1", s.Depth)
	case s.Branch < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "branch factor %d < 0", s.Branch)
	case taskCount < s.Roots+s.Depth:
		return errors.Wrapf(ErrInvalidConfiguration,
			"%d tasks are too few for %d roots and depth %d", taskCount, s.Roots, s.Depth)
	}
	return nil
}

// A Builder draws graphs from a random stream. It is not safe for concurrent
// use.
type Builder struct {
	rng    *rand.Rand
	logger *zap.Logger
}

// Option configures a [Builder].
type Option func(*Builder)

func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder returns a builder drawing from src, which may be shared with a
// task set generator to continue its stream.
func NewBuilder(src rand.Source, opts ...Option) *Builder {
	if src == nil {
		panic("source must be non-nil")
	}
	b := &Builder{
		rng:    rand.New(src),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build draws a leveled graph over taskCount tasks.
//
// The first shape.Roots tasks form level 0 and the next Depth-1 tasks seed
// levels 1..Depth-1 so that no level is empty. Every other task lands on a
// uniformly random level in 1..Depth-1, or on level 0 when Depth is 1. Each
// node on a level other than the last then draws an out-degree in
// [0, Branch]; it links to every node on the next level if the degree is at
// least that level's size, and otherwise to that many distinct nodes chosen
// uniformly from it.
func (b *Builder) Build(taskCount int, shape Shape) (*Graph, error) {
	if err := shape.Validate(taskCount); err != nil {
		return nil, err
	}

	g := newGraph(taskCount, shape.Depth)
	for i := range shape.Roots {
		g.place(i, 0)
	}
	for level := 1; level < shape.Depth; level++ {
		g.place(shape.Roots+level-1, level)
	}
	for i := shape.Roots + shape.Depth - 1; i < taskCount; i++ {
		level := 0
		if shape.Depth > 1 {
			level = 1 + b.rng.Intn(shape.Depth-1)
		}
		g.place(i, level)
	}

	for level := 0; level < shape.Depth-1; level++ {
		next := g.Levels[level+1]
		for _, parent := range g.Levels[level] {
			degree := b.rng.Intn(shape.Branch + 1)
			for _, child := range b.choose(next, degree) {
				g.link(parent, child)
			}
		}
	}

	b.logger.Debug("built graph",
		zap.Int("tasks", taskCount),
		zap.Int("depth", shape.Depth),
		zap.Int("edges", len(g.Edges)),
	)
	return g, nil
}

// choose returns k distinct entries of from in random order, or all of from
// in order when k covers it.
func (b *Builder) choose(from []int, k int) []int {
	if k >= len(from) {
		return from
	}
	pool := make([]int, len(from))
	copy(pool, from)
	for i := range k {
		j := i + b.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
