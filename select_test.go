// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg_test

import (
	"fmt"
	"testing"

	"github.com/petenewcomb/tsg-go"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func poolOf(utilizations ...float64) tsg.TaskSet {
	pool := make(tsg.TaskSet, len(utilizations))
	for i, u := range utilizations {
		pool[i] = tsg.NewTask(tsg.TaskSpec{Name: fmt.Sprintf("R%d", i), WCET: u * 10, Period: 10})
	}
	return pool
}

func names(ts tsg.TaskSet) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func TestSelectByUtilizationAcceptsCrossing(t *testing.T) {
	chk := require.New(t)
	selected, err := tsg.SelectByUtilization(poolOf(0.2, 0.2, 0.15, 0.3), 0.5, 0.1)
	chk.NoError(err)
	chk.Equal([]string{"R0", "R1", "R2"}, names(selected))
	chk.InDelta(0.55, selected.Utilization(), 1e-12)
}

func TestSelectByUtilizationCorrectsOvershoot(t *testing.T) {
	chk := require.New(t)
	selected, err := tsg.SelectByUtilization(poolOf(0.2, 0.2, 0.3, 0.05, 0.5, 0.1), 0.5, 0.1)
	chk.NoError(err)
	// R2 overshoots, R4 would overshoot again.
	chk.Equal([]string{"R0", "R1", "R3", "R5"}, names(selected))
	chk.InDelta(0.55, selected.Utilization(), 1e-12)
}

func TestSelectByUtilizationExhausted(t *testing.T) {
	chk := require.New(t)
	_, err := tsg.SelectByUtilization(poolOf(0.1, 0.1), 0.5, 0.1)
	chk.ErrorIs(err, tsg.ErrSamplingExhausted)

	_, err = tsg.SelectByUtilization(poolOf(0.2, 0.9, 0.8), 0.5, 0.1)
	chk.ErrorIs(err, tsg.ErrSamplingExhausted)

	_, err = tsg.SelectByUtilization(poolOf(0.2), 0, 0.1)
	chk.ErrorIs(err, tsg.ErrInvalidConfiguration)
}

func TestSelectByUtilizationWindow(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		utilizations := rapid.SliceOfN(rapid.Float64Range(0.001, 0.3), 1, 200).Draw(t, "utilizations")
		target := rapid.Float64Range(0.05, 1).Draw(t, "target")
		threshold := rapid.Float64Range(0, 0.2).Draw(t, "threshold")

		selected, err := tsg.SelectByUtilization(poolOf(utilizations...), target, threshold)
		if err != nil {
			require.ErrorIs(t, err, tsg.ErrSamplingExhausted)
			return
		}
		u := selected.Utilization()
		require.GreaterOrEqual(t, u, target-1e-9)
		require.LessOrEqual(t, u, target+threshold+1e-9)
	})
}
