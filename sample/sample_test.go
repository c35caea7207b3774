// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sample_test

import (
	"math"
	"testing"

	"github.com/petenewcomb/tsg-go/internal/testgen"
	"github.com/petenewcomb/tsg-go/sample"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"pgregory.net/rapid"
)

func TestUUniFastSumsToTarget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		u := rapid.Float64Range(1e-6, 1).Draw(t, "u")
		s := sample.NewSampler(testgen.Seed(t))

		utilizations, err := s.UUniFast(n, u)
		require.NoError(t, err)
		require.Len(t, utilizations, n)
		for _, v := range utilizations {
			require.GreaterOrEqual(t, v, 0.0)
		}
		require.InDelta(t, u, floats.Sum(utilizations), 1e-9)
	})
}

func TestUUniFastSingleTask(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(1)
	utilizations, err := s.UUniFast(1, 0.7)
	chk.NoError(err)
	chk.Equal([]float64{0.7}, utilizations)
}

func TestUUniFastInvalid(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(1)

	_, err := s.UUniFast(0, 0.5)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)

	_, err = s.UUniFast(3, 0)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)

	_, err = s.UUniFast(3, math.NaN())
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)

	_, err = s.UUniFastSets(3, 0.5, 0)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)
}

func TestRandFixedSumExactSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		u := rapid.Float64Range(1e-6, float64(n)).Draw(t, "u")
		sets := rapid.IntRange(1, 4).Draw(t, "sets")
		s := sample.NewSampler(testgen.Seed(t))

		rows, err := s.RandFixedSum(n, u, sets)
		require.NoError(t, err)
		require.Len(t, rows, sets)
		for _, row := range rows {
			require.Len(t, row, n)
			for _, v := range row {
				require.GreaterOrEqual(t, v, -1e-9)
				require.LessOrEqual(t, v, 1+1e-9)
			}
			require.InEpsilon(t, u, floats.Sum(row), 1e-6)
		}
	})
}

func TestRandFixedSumIntegerTargets(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(42)
	for n := 1; n <= 12; n++ {
		for u := 1; u <= n; u++ {
			rows, err := s.RandFixedSum(n, float64(u), 8)
			chk.NoError(err)
			for _, row := range rows {
				chk.InEpsilon(float64(u), floats.Sum(row), 1e-6, "n=%d u=%d row=%v", n, u, row)
			}
		}
	}
}

func TestRandFixedSumExchangeable(t *testing.T) {
	chk := require.New(t)
	const n, u, sets = 4, 1.3, 40000
	s := sample.NewSampler(11)
	rows, err := s.RandFixedSum(n, u, sets)
	chk.NoError(err)
	chk.Len(rows, sets)

	var above, sums [n]float64
	for _, row := range rows {
		for i, v := range row {
			sums[i] += v
			if v > 0.6 {
				above[i]++
			}
		}
	}
	for i := range n {
		chk.InDelta(u/n, sums[i]/sets, 0.01, "mean of coordinate %d", i)
		chk.InDelta(0.15, above[i]/sets, 0.02, "tail of coordinate %d", i)
	}
}

func TestRandFixedSumFullCube(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(7)
	rows, err := s.RandFixedSum(5, 5, 3)
	chk.NoError(err)
	for _, row := range rows {
		for _, v := range row {
			chk.InDelta(1, v, 1e-9)
		}
	}
}

func TestRandFixedSumInfeasible(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(1)

	_, err := s.RandFixedSum(3, 3.5, 1)
	chk.ErrorIs(err, sample.ErrNumericDegeneracy)

	_, err = s.RandFixedSum(3, -0.1, 1)
	chk.ErrorIs(err, sample.ErrNumericDegeneracy)

	_, err = s.RandFixedSum(0, 0.5, 1)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)

	_, err = s.RandFixedSum(3, 0.5, 0)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)
}

func TestCostsWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		model := rapid.SampledFrom([]sample.CostModel(sample.WATERSCatalogue)).Draw(t, "model")
		amount := rapid.IntRange(0, 500).Draw(t, "amount")
		scaling := rapid.Bool().Draw(t, "scaling")
		s := sample.NewSampler(testgen.Seed(t))

		costs, err := s.Costs(model, amount, scaling)
		require.NoError(t, err)
		require.Len(t, costs, amount)
		lo, hi := model.Bounds(scaling)
		for _, c := range costs {
			require.GreaterOrEqual(t, c, lo*(1-1e-12))
			require.LessOrEqual(t, c, hi*(1+1e-12))
		}
	})
}

func TestCostsReproducible(t *testing.T) {
	chk := require.New(t)
	model, err := sample.WATERSCatalogue.Lookup(10)
	chk.NoError(err)

	a, err := sample.NewSampler(99).Costs(model, 200, true)
	chk.NoError(err)
	b, err := sample.NewSampler(99).Costs(model, 200, true)
	chk.NoError(err)
	chk.Equal(a, b)

	s := sample.NewSampler(99)
	_, err = s.Costs(model, 10, true)
	chk.NoError(err)
	s.Reseed(99)
	c, err := s.Costs(model, 200, true)
	chk.NoError(err)
	chk.Equal(a, c)
}

func TestCostsExhausted(t *testing.T) {
	chk := require.New(t)
	model := sample.CostModel{
		Period: 1, Shape: sample.Weibull, K: 1, Rate: 1,
		Min: 1e6, Max: 2e6, ScaleMin: 1, ScaleMax: 1,
	}
	s := sample.NewSampler(1, sample.WithMaxRejectionRounds(3))
	_, err := s.Costs(model, 10, false)
	chk.ErrorIs(err, sample.ErrSamplingExhausted)
}

func TestLookupUnknownPeriod(t *testing.T) {
	chk := require.New(t)
	_, err := sample.WATERSCatalogue.Lookup(3)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)

	m, err := sample.WATERSCatalogue.Lookup(1000)
	chk.NoError(err)
	chk.Equal(sample.Flat, m.Shape)
}

func TestCatalogueValid(t *testing.T) {
	chk := require.New(t)
	chk.NoError(sample.WATERSCatalogue.Validate())
	chk.Len(sample.WATERSPeriodShares, len(sample.WATERSCatalogue))
	chk.InDelta(1, floats.Sum(sample.WATERSPeriodShares), 1e-12)
}

func TestRunnables(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(5)
	pool, err := s.Runnables(sample.WATERSCatalogue, sample.WATERSPeriodShares, 1000, true)
	chk.NoError(err)
	chk.Len(pool, 1000)
	for _, r := range pool {
		m, err := sample.WATERSCatalogue.Lookup(r.Period)
		chk.NoError(err)
		lo, hi := m.Bounds(true)
		chk.GreaterOrEqual(r.Cost, lo*(1-1e-12))
		chk.LessOrEqual(r.Cost, hi*(1+1e-12))
	}

	_, err = s.Runnables(sample.WATERSCatalogue, []float64{1, 2}, 10, true)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)
}

func TestCataloguePeriodsRespectShares(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(3)
	shares := make([]float64, len(sample.WATERSCatalogue))
	shares[3] = 1
	periods, err := s.CataloguePeriods(sample.WATERSCatalogue, shares, 100)
	chk.NoError(err)
	for _, p := range periods {
		chk.Equal(sample.WATERSCatalogue[3].Period, p)
	}
}

func TestPeriods(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Float64Range(1, 100).Draw(t, "min")
		hi := lo + rapid.Float64Range(0, 1000).Draw(t, "span")
		dist := rapid.SampledFrom([]sample.PeriodDistribution{sample.LogUniform, sample.Uniform}).Draw(t, "dist")
		s := sample.NewSampler(testgen.Seed(t))

		periods, err := s.Periods(20, lo, hi, dist, false)
		require.NoError(t, err)
		for _, p := range periods {
			require.GreaterOrEqual(t, p, lo*(1-1e-12))
			require.LessOrEqual(t, p, hi*(1+1e-12))
		}
	})
}

func TestGranularPeriods(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(11)
	periods, err := s.GranularPeriods(200, 10, 100, 5, sample.LogUniform)
	chk.NoError(err)
	for _, p := range periods {
		chk.Equal(0.0, math.Mod(p, 5))
		chk.GreaterOrEqual(p, 10.0)
		chk.LessOrEqual(p, 105.0)
	}

	_, err = s.GranularPeriods(1, 1, 100, 5, sample.Uniform)
	chk.ErrorIs(err, sample.ErrInvalidConfiguration)
}

func TestSnappedPeriods(t *testing.T) {
	chk := require.New(t)
	s := sample.NewSampler(13)
	predefined := []float64{2, 5, 10, 20, 50, 100}
	periods, err := s.SnappedPeriods(200, 1, 200, predefined)
	chk.NoError(err)
	for _, p := range periods {
		chk.Contains(predefined, p)
	}
}

func TestParsePeriodDistribution(t *testing.T) {
	chk := require.New(t)
	var d sample.PeriodDistribution
	chk.NoError(d.UnmarshalText([]byte("unif")))
	chk.Equal(sample.Uniform, d)
	text, err := sample.LogUniform.MarshalText()
	chk.NoError(err)
	chk.Equal("logunif", string(text))
	chk.ErrorIs(d.UnmarshalText([]byte("normal")), sample.ErrInvalidConfiguration)
}
