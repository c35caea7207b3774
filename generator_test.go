// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/internal/testgen"
	"github.com/petenewcomb/tsg-go/sample"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGenerateUUniFastEndToEnd(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyUUniFast
	cfg.TaskCount = 5
	cfg.Utilization = 0.5

	ts, err := tsg.NewGenerator(1).Generate(cfg)
	chk.NoError(err)
	chk.Len(ts, 5)
	chk.InDelta(0.5, ts.Utilization(), 1e-6)
	for i, task := range ts {
		chk.Equal(fmt.Sprintf("T%d", i), task.Name)
		chk.Greater(task.Period, 0.0)
		chk.Equal(task.Period, task.Deadline)
	}
}

func TestGenerateUUniFastProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := tsg.DefaultConfig.Clone()
		cfg.Strategy = tsg.StrategyUUniFast
		cfg.TaskCount = testgen.DefaultConfig.TaskCount.Draw(t, "taskCount")
		cfg.Utilization = testgen.DefaultConfig.Utilization.Draw(t, "utilization")
		cfg.Round = testgen.BiasedBool(0.3).Draw(t, "round")
		lo := testgen.DefaultConfig.Period.Draw(t, "minPeriod")
		hi := testgen.DefaultConfig.Period.Draw(t, "maxPeriod")
		if cfg.Round {
			lo, hi = math.Ceil(lo), math.Floor(hi)
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		cfg.UUniFast.MinPeriod, cfg.UUniFast.MaxPeriod = lo, hi

		ts, err := tsg.NewGenerator(testgen.Seed(t)).Generate(cfg)
		require.NoError(t, err)
		require.Len(t, ts, cfg.TaskCount)
		require.InDelta(t, cfg.Utilization, ts.Utilization(), 1e-6)
		for _, task := range ts {
			require.GreaterOrEqual(t, task.Period, lo*(1-1e-12))
			require.LessOrEqual(t, task.Period, hi*(1+1e-12))
			require.Equal(t, task.Period, task.Deadline)
			if cfg.Round {
				require.Equal(t, math.Round(task.Period), task.Period)
			}
		}
	})
}

func TestGenerateUUniFastPredefinedPeriods(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyUUniFast
	cfg.UUniFast.MinPeriod = 5
	cfg.UUniFast.MaxPeriod = 2000
	cfg.UUniFast.Predefined = []float64{5, 10, 20, 50, 100, 200, 500, 1000}

	ts, err := tsg.NewGenerator(3).Generate(cfg)
	chk.NoError(err)
	for _, task := range ts {
		chk.Contains(cfg.UUniFast.Predefined, task.Period)
	}
	chk.InDelta(0.5, ts.Utilization(), 1e-6)
}

func TestGenerateWATERSWindow(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyWATERS
	cfg.Utilization = 0.5
	cfg.WATERS.Threshold = 0.1

	for seed := uint64(1); seed <= 5; seed++ {
		ts, err := tsg.NewGenerator(seed).Generate(cfg)
		chk.NoError(err)
		chk.Len(ts, cfg.TaskCount)
		chk.GreaterOrEqual(ts.Utilization(), 0.4-1e-9)
		chk.LessOrEqual(ts.Utilization(), 0.6+1e-9)
		for _, task := range ts {
			_, err := sample.WATERSCatalogue.Lookup(task.Period)
			chk.NoError(err)
			chk.Equal(task.Period, task.Deadline)
			chk.LessOrEqual(task.Utilization(), 1.0)
		}
	}
}

func TestGenerateWATERSOptions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := tsg.DefaultConfig.Clone()
		cfg.Strategy = tsg.StrategyWATERS
		cfg.WATERS.Scaling = testgen.BiasedBool(0.7).Draw(t, "scaling")
		cfg.WATERS.MergeDown = testgen.BiasedBool(0.5).Draw(t, "mergeDown")

		ts, err := tsg.NewGenerator(testgen.Seed(t)).Generate(cfg)
		require.NoError(t, err)
		if cfg.WATERS.MergeDown {
			require.Len(t, ts, cfg.TaskCount)
		} else {
			require.NotEmpty(t, ts)
		}
		require.GreaterOrEqual(t, ts.Utilization(), cfg.Utilization-cfg.WATERS.Threshold-1e-9)
		require.LessOrEqual(t, ts.Utilization(), cfg.Utilization+cfg.WATERS.Threshold+1e-9)
		for _, task := range ts {
			_, err := sample.WATERSCatalogue.Lookup(task.Period)
			require.NoError(t, err)
		}
	})
}

func TestGenerateWATERSUnmerged(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyWATERS
	cfg.WATERS.MergeDown = false

	for seed := uint64(1); seed <= 5; seed++ {
		ts, err := tsg.NewGenerator(seed).Generate(cfg)
		chk.NoError(err)
		chk.GreaterOrEqual(ts.Utilization(), cfg.Utilization-1e-9)
		chk.LessOrEqual(ts.Utilization(), cfg.Utilization+cfg.WATERS.Threshold+1e-9)
		for _, task := range ts {
			chk.Equal(task.Period, task.Deadline)
		}
	}
}

func TestGenerateWATERSExhausted(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyWATERS
	// Fifteen runnables cannot come close to ten processors.
	cfg.Utilization = 10
	cfg.WATERS.PoolSize = 15
	cfg.Limits.MaxAttempts = 3

	_, err := tsg.NewGenerator(1).Generate(cfg)
	chk.ErrorIs(err, tsg.ErrSamplingExhausted)
}

func TestGenerateEmberson(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := tsg.DefaultConfig.Clone()
		cfg.Strategy = tsg.StrategyEmberson
		cfg.TaskCount = testgen.DefaultConfig.TaskCount.Draw(t, "taskCount")
		cfg.Utilization = testgen.DefaultConfig.Utilization.Draw(t, "utilization")
		cfg.Emberson.Distribution = rapid.SampledFrom([]sample.PeriodDistribution{sample.LogUniform, sample.Uniform}).Draw(t, "dist")

		ts, err := tsg.NewGenerator(testgen.Seed(t)).Generate(cfg)
		require.NoError(t, err)
		require.Len(t, ts, cfg.TaskCount)
		require.InEpsilon(t, cfg.Utilization, ts.Utilization(), 1e-6)
		for _, task := range ts {
			require.Equal(t, 0.0, math.Mod(task.Period, cfg.Emberson.Granularity))
			require.GreaterOrEqual(t, task.Period, cfg.Emberson.MinPeriod)
			require.Equal(t, task.Period, task.Deadline)
		}
	})
}

func TestGenerateEmbersonRounded(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyEmberson
	cfg.Round = true

	ts, err := tsg.NewGenerator(8).Generate(cfg)
	chk.NoError(err)
	for _, task := range ts {
		chk.Equal(math.Round(task.WCET), task.WCET)
		chk.GreaterOrEqual(task.WCET, 1.0)
	}
}

func TestGenerateEmbersonInfeasible(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyEmberson
	cfg.TaskCount = 5
	cfg.Utilization = 6

	_, err := tsg.NewGenerator(1).Generate(cfg)
	chk.ErrorIs(err, tsg.ErrNumericDegeneracy)
}

func TestGenerateWATERSFixedSum(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyWATERSFixedSum
	cfg.TaskCount = 20
	cfg.Utilization = 0.75

	ts, err := tsg.NewGenerator(4).Generate(cfg)
	chk.NoError(err)
	chk.Len(ts, 20)
	chk.InEpsilon(0.75, ts.Utilization(), 1e-6)
	for _, task := range ts {
		_, err := sample.WATERSCatalogue.Lookup(task.Period)
		chk.NoError(err)
	}
}

func TestGenerateInvalidConfiguration(t *testing.T) {
	chk := require.New(t)
	g := tsg.NewGenerator(1)

	cfg := tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.Strategy(9)
	_, err := g.Generate(cfg)
	chk.ErrorIs(err, tsg.ErrInvalidConfiguration)

	cfg = tsg.DefaultConfig.Clone()
	cfg.TaskCount = 0
	_, err = g.Generate(cfg)
	chk.ErrorIs(err, tsg.ErrInvalidConfiguration)

	cfg = tsg.DefaultConfig.Clone()
	cfg.Strategy = tsg.StrategyWATERSFixedSum
	cfg.WATERS.PeriodShares = []float64{1}
	_, err = g.Generate(cfg)
	chk.ErrorIs(err, tsg.ErrInvalidConfiguration)
}

func TestGenerateReproducible(t *testing.T) {
	chk := require.New(t)
	for _, strategy := range []tsg.Strategy{
		tsg.StrategyWATERS, tsg.StrategyUUniFast, tsg.StrategyEmberson, tsg.StrategyWATERSFixedSum,
	} {
		cfg := tsg.DefaultConfig.Clone()
		cfg.Strategy = strategy
		a, err := tsg.NewGenerator(77).Generate(cfg)
		chk.NoError(err)
		b, err := tsg.NewGenerator(77).Generate(cfg)
		chk.NoError(err)
		chk.Equal(a, b, "strategy %v", strategy)
	}
}

func TestGenerateSets(t *testing.T) {
	chk := require.New(t)
	cfg := tsg.DefaultConfig.Clone()
	cfg.SetCount = 4

	sets, err := tsg.NewGenerator(2).GenerateSets(cfg)
	chk.NoError(err)
	chk.Len(sets, 4)
	for _, ts := range sets {
		chk.Len(ts, cfg.TaskCount)
		chk.NoError(ts.Validate())
	}
	chk.NotEqual(sets[0], sets[1])
}

func TestParseStrategy(t *testing.T) {
	chk := require.New(t)
	s, err := tsg.ParseStrategy("3")
	chk.NoError(err)
	chk.Equal(tsg.StrategyWATERSFixedSum, s)

	s, err = tsg.ParseStrategy("emberson")
	chk.NoError(err)
	chk.Equal(tsg.StrategyEmberson, s)

	_, err = tsg.ParseStrategy("4")
	chk.ErrorIs(err, tsg.ErrInvalidConfiguration)
}
