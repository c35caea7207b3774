// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sample

import (
	"math"

	"github.com/pkg/errors"
)

// RandFixedSum draws sets rows of n values in [0, 1] that each sum to u,
// uniformly over that slice of the simplex. This is Roger Stafford's
// randfixedsum as adapted for task set generation by Emberson, Stafford and
// Davis (WATERS 2010).
//
// The sampler first builds a table of transition probabilities between the
// unit-cube simplices that tile the feasible region, then walks it backwards
// drawing one coordinate per step. The walk fixes the coordinate order, so
// each row is permuted before it is returned.
func (s *Sampler) RandFixedSum(n int, u float64, sets int) ([][]float64, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "randfixedsum: dimension %d < 1", n)
	}
	if sets < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "randfixedsum: set count %d < 1", sets)
	}
	if math.IsNaN(u) || u < 0 || u > float64(n) {
		return nil, errors.Wrapf(ErrNumericDegeneracy, "randfixedsum: sum %v outside [0, %d]", u, n)
	}

	out := make([][]float64, sets)
	if n == 1 {
		for i := range out {
			out[i] = []float64{u}
		}
		return out, nil
	}

	t := transitionTable(n, u)
	for i := range out {
		out[i] = s.walkFixedSum(t, n, u)
	}
	return out, nil
}

// simplexColumn returns the index of the unit simplex containing the target.
// Exact integer targets, including u == n, land in the lower simplex.
func simplexColumn(n int, u float64) int {
	return max(min(int(math.Floor(u)), n-1), 0)
}

// transitionTable returns the (n-1)×n table t where t[i-1][j] is the
// probability of stepping from simplex column j to j-1 while i coordinates
// remain to be drawn.
func transitionTable(n int, u float64) [][]float64 {
	k := float64(simplexColumn(n, u))

	s1 := make([]float64, n)
	s2 := make([]float64, n)
	for i := range n {
		s1[i] = u - (k - float64(i))
		s2[i] = (k + float64(n-i)) - u
	}

	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n+1)
	}
	// The volume recursion is seeded with the largest float so that ratios
	// stay representable as they shrink.
	w[0][1] = math.MaxFloat64

	t := make([][]float64, n-1)
	for i := range t {
		t[i] = make([]float64, n)
	}

	for i := 2; i <= n; i++ {
		fi := float64(i)
		prev, cur := w[i-2], w[i-1]
		for c := range i {
			tmp1 := prev[c+1] * s1[c] / fi
			tmp2 := prev[c] * s2[n-i+c] / fi
			cur[c+1] = tmp1 + tmp2
			// A zero volume means there is no valid transition; adding the
			// smallest positive float keeps the ratio finite and zero.
			denom := cur[c+1] + math.SmallestNonzeroFloat64
			if s2[n-i+c] > s1[c] {
				t[i-2][c] = tmp2 / denom
			} else {
				t[i-2][c] = 1 - tmp1/denom
			}
		}
	}
	return t
}

func (s *Sampler) walkFixedSum(t [][]float64, n int, u float64) []float64 {
	x := make([]float64, n)
	sum := u
	j := simplexColumn(n, u) + 1
	sm, pr := 0.0, 1.0
	for i := n - 1; i >= 1; i-- {
		rt := s.rng.Float64()
		rs := s.rng.Float64()

		var e float64
		if j >= 1 && rt <= t[i-1][j-1] {
			e = 1
		}
		sx := math.Pow(rs, 1/float64(i))
		sm += (1 - sx) * pr * sum / float64(i+1)
		pr *= sx
		x[n-i-1] = sm + pr*e
		sum -= e
		j -= int(e)
	}
	x[n-1] = sm + pr*sum

	s.rng.Shuffle(n, func(a, b int) {
		x[a], x[b] = x[b], x[a]
	})
	return x
}
