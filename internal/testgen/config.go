// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package testgen draws randomized generator inputs for property tests.
package testgen

import (
	"pgregory.net/rapid"
)

var DefaultConfig = Config{
	TaskCount: BiasedIntConfig{Min: 1, Med: 10, Max: 50},
	Utilization: BiasedFloatConfig{
		Min: 0.01, Med: 0.5, Max: 1,
	},
	Shape: ShapeConfig{
		Roots:  BiasedIntConfig{Min: 1, Med: 1, Max: 4},
		Depth:  BiasedIntConfig{Min: 1, Med: 3, Max: 8},
		Branch: BiasedIntConfig{Min: 0, Med: 2, Max: 5},
	},
	Period: BiasedFloatConfig{Min: 1, Med: 10, Max: 1000},
}

type Config struct {
	TaskCount   BiasedIntConfig
	Utilization BiasedFloatConfig
	Shape       ShapeConfig
	Period      BiasedFloatConfig
}

type ShapeConfig struct {
	Roots  BiasedIntConfig
	Depth  BiasedIntConfig
	Branch BiasedIntConfig
}

// Shape is a DAG shape with at least Roots+Depth tasks available.
type Shape struct {
	TaskCount int
	Roots     int
	Depth     int
	Branch    int
}

// Draw picks a shape satisfying the DAG builder's preconditions.
func (c *ShapeConfig) Draw(t *rapid.T, name string) Shape {
	return rapid.Custom(func(t *rapid.T) Shape {
		roots := c.Roots.Draw(t, "roots")
		depth := c.Depth.Draw(t, "depth")
		branch := c.Branch.Draw(t, "branch")
		extra := rapid.IntRange(0, 40).Draw(t, "extra")
		return Shape{
			TaskCount: roots + depth + extra,
			Roots:     roots,
			Depth:     depth,
			Branch:    branch,
		}
	}).Draw(t, name)
}

// Seed draws a generator seed.
func Seed(t *rapid.T) uint64 {
	return rapid.Uint64().Draw(t, "seed")
}
