// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sample

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

// Runnable is one drawn (period, cost) pair. Its cost is already in task time
// units.
type Runnable struct {
	Period float64
	Cost   float64
}

// Utilization returns Cost/Period.
func (r Runnable) Utilization() float64 {
	return r.Cost / r.Period
}

type costDist interface {
	Rand() float64
}

func (s *Sampler) costDist(m CostModel) (costDist, error) {
	switch m.Shape {
	case Weibull:
		return distuv.Weibull{K: m.K, Lambda: 1 / m.Rate, Src: s.src}, nil
	case Flat:
		return distuv.Uniform{Min: m.Min, Max: m.Max, Src: s.src}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidConfiguration, "cost model %v has unknown shape %d", m.Period, m.Shape)
	}
}

// Costs draws amount execution times from m. Draws outside [m.Min, m.Max] are
// redrawn in place and the whole batch is checked again, until every value is
// plausible or the sampler's rejection bound is hit. With scaling each value
// is multiplied by an independent factor in [m.ScaleMin, m.ScaleMax]. The
// results are converted by [CostUnit].
func (s *Sampler) Costs(m CostModel, amount int, scaling bool) ([]float64, error) {
	if amount < 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "cost count %d < 0", amount)
	}
	if amount == 0 {
		return nil, nil
	}
	dist, err := s.costDist(m)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, amount)
	for i := range samples {
		samples[i] = dist.Rand()
	}

	rounds := 0
	for {
		outliers := 0
		for i, v := range samples {
			if v < m.Min || v > m.Max {
				outliers++
				samples[i] = dist.Rand()
			}
		}
		if outliers == 0 {
			break
		}
		rounds++
		if rounds >= s.maxRejectionRounds {
			return nil, errors.Wrapf(ErrSamplingExhausted,
				"period %v costs still out of [%v, %v] after %d rounds", m.Period, m.Min, m.Max, rounds)
		}
	}
	if rounds > 0 {
		s.logger.Debug("redrew implausible costs",
			zap.Float64("period", m.Period),
			zap.Int("amount", amount),
			zap.Int("rounds", rounds),
		)
	}

	var scale distuv.Uniform
	if scaling {
		scale = distuv.Uniform{Min: m.ScaleMin, Max: m.ScaleMax, Src: s.src}
	}
	for i, v := range samples {
		if scaling {
			v *= scale.Rand()
		}
		samples[i] = v * CostUnit
	}
	return samples, nil
}

// CataloguePeriods draws amount periods from the catalogue weighted by
// shares, which need not be normalized but must have one entry per model.
func (s *Sampler) CataloguePeriods(c Catalogue, shares []float64, amount int) ([]float64, error) {
	idx, err := s.catalogueIndices(c, shares, amount)
	if err != nil {
		return nil, err
	}
	periods := make([]float64, amount)
	for i, k := range idx {
		periods[i] = c[k].Period
	}
	return periods, nil
}

func (s *Sampler) catalogueIndices(c Catalogue, shares []float64, amount int) ([]int, error) {
	if amount < 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "period count %d < 0", amount)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	weights, err := c.normalizeShares(shares)
	if err != nil {
		return nil, err
	}
	cat := distuv.NewCategorical(weights, s.src)
	idx := make([]int, amount)
	for i := range idx {
		idx[i] = int(cat.Rand())
	}
	return idx, nil
}

// Runnables builds a shuffled pool of amount runnables: periods are drawn
// from the catalogue by shares and each period's costs are drawn as one batch
// by [Sampler.Costs].
func (s *Sampler) Runnables(c Catalogue, shares []float64, amount int, scaling bool) ([]Runnable, error) {
	idx, err := s.catalogueIndices(c, shares, amount)
	if err != nil {
		return nil, err
	}
	counts := make([]int, len(c))
	for _, k := range idx {
		counts[k]++
	}

	pool := make([]Runnable, 0, amount)
	for k, m := range c {
		costs, err := s.Costs(m, counts[k], scaling)
		if err != nil {
			return nil, err
		}
		for _, cost := range costs {
			pool = append(pool, Runnable{Period: m.Period, Cost: cost})
		}
	}
	s.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool, nil
}
