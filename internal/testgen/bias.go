// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package testgen

import (
	"fmt"

	"pgregory.net/rapid"
)

type BiasedIntConfig struct {
	Min int
	Med int
	Max int
}

func (c *BiasedIntConfig) Draw(t *rapid.T, name string) int {
	if c.Med < c.Min || c.Max < c.Med {
		panic(fmt.Sprint("invalid BiasedIntConfig:", *c))
	}
	return rapid.Custom(func(t *rapid.T) int {
		// Drawing from [min-med, max-med] and shifting lands rapid's bias
		// toward zero on the median.
		return c.Med + rapid.IntRange(c.Min-c.Med, c.Max-c.Med).Draw(t, name+"(internal)")
	}).Draw(t, name)
}

type BiasedFloatConfig struct {
	Min float64
	Med float64
	Max float64
}

func (c *BiasedFloatConfig) Draw(t *rapid.T, name string) float64 {
	if !(c.Min <= c.Med && c.Med <= c.Max) {
		panic(fmt.Sprint("invalid BiasedFloatConfig:", *c))
	}
	return rapid.Custom(func(t *rapid.T) float64 {
		v := c.Med + rapid.Float64Range(c.Min-c.Med, c.Max-c.Med).Draw(t, name+"(internal)")
		// Shifting can round past either bound.
		return min(max(v, c.Min), c.Max)
	}).Draw(t, name)
}

// BiasedBool returns a generator of booleans that are true with probability p.
func BiasedBool(p float64) *rapid.Generator[bool] {
	notOne := func(v float64) bool { return v != 1 }
	return rapid.Custom(func(t *rapid.T) bool {
		return rapid.Float64Range(0, 1).Filter(notOne).Draw(t, "p") < p || p == 1.0
	})
}
