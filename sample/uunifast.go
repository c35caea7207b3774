// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sample

import (
	"math"

	"github.com/pkg/errors"
)

// UUniFast splits total utilization u across n tasks (Bini and Buttazzo,
// "Measuring the performance of schedulability tests", 2005). The values are
// nonnegative and sum to u. The final value is whatever utilization remains,
// which is what makes the sum exact.
func (s *Sampler) UUniFast(n int, u float64) ([]float64, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "uunifast: task count %d < 1", n)
	}
	if !(u > 0) || math.IsInf(u, 0) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "uunifast: utilization %v must be positive", u)
	}
	utilizations := make([]float64, 0, n)
	remaining := u
	for i := 1; i < n; i++ {
		next := remaining * math.Pow(s.rng.Float64(), 1/float64(n-i))
		utilizations = append(utilizations, remaining-next)
		remaining = next
	}
	return append(utilizations, remaining), nil
}

// UUniFastSets draws sets independent UUniFast vectors.
func (s *Sampler) UUniFastSets(n int, u float64, sets int) ([][]float64, error) {
	if sets < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "uunifast: set count %d < 1", sets)
	}
	out := make([][]float64, sets)
	for i := range out {
		row, err := s.UUniFast(n, u)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
