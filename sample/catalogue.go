// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sample

import (
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// CostUnit converts catalogue execution times (µs) to task time units (ms).
const CostUnit = 0.001

// CostShape names the distribution family of a [CostModel].
type CostShape int

const (
	// Weibull costs follow a two-parameter Weibull with shape K and rate
	// Rate, that is scale 1/Rate.
	Weibull CostShape = iota
	// Flat costs are uniform over [Min, Max].
	Flat
)

// CostModel is the per-period execution time model published with the WATERS
// 2015 automotive benchmark. Costs outside [Min, Max] are implausible and are
// redrawn; ScaleMin and ScaleMax bound the factor that inflates an average
// case time to a worst case one.
type CostModel struct {
	Period   float64
	Shape    CostShape
	K        float64
	Rate     float64
	Min      float64
	Max      float64
	ScaleMin float64
	ScaleMax float64
}

// Bounds returns the range every cost drawn from the model lies in once
// converted by [CostUnit].
func (m CostModel) Bounds(scaling bool) (lo, hi float64) {
	lo, hi = m.Min*CostUnit, m.Max*CostUnit
	if scaling {
		lo *= m.ScaleMin
		hi *= m.ScaleMax
	}
	return lo, hi
}

// Catalogue is an ordered list of cost models with distinct periods.
type Catalogue []CostModel

// WATERSCatalogue holds the runnable parameters from "Real World Automotive
// Benchmarks For Free" (Kramer, Ziegenbein and Hamann, WATERS 2015).
var WATERSCatalogue = Catalogue{
	{Period: 1, Shape: Weibull, K: 1.044, Rate: 0.214, Min: 0.34, Max: 30.11, ScaleMin: 1.3, ScaleMax: 29.11},
	{Period: 2, Shape: Weibull, K: 1.0607440083, Rate: 0.2479463059, Min: 0.32, Max: 40.69, ScaleMin: 1.54, ScaleMax: 19.04},
	{Period: 5, Shape: Weibull, K: 1.00818633, Rate: 0.09, Min: 0.36, Max: 83.38, ScaleMin: 1.13, ScaleMax: 18.44},
	{Period: 10, Shape: Weibull, K: 1.0098, Rate: 0.0985, Min: 0.21, Max: 309.87, ScaleMin: 1.06, ScaleMax: 30.03},
	{Period: 20, Shape: Weibull, K: 1.01309699673984310, Rate: 0.1138186679, Min: 0.25, Max: 291.42, ScaleMin: 1.06, ScaleMax: 15.61},
	{Period: 50, Shape: Weibull, K: 1.00324219159296302, Rate: 0.05685450460, Min: 0.29, Max: 92.98, ScaleMin: 1.13, ScaleMax: 7.76},
	{Period: 100, Shape: Weibull, K: 1.00900736028318527, Rate: 0.09448019812, Min: 0.21, Max: 420.43, ScaleMin: 1.02, ScaleMax: 8.88},
	{Period: 200, Shape: Weibull, K: 1.15710612360723798, Rate: 0.3706045664, Min: 0.22, Max: 21.95, ScaleMin: 1.03, ScaleMax: 4.9},
	// The 1000 ms range is too narrow to fit a Weibull.
	{Period: 1000, Shape: Flat, Min: 0.37, Max: 0.46, ScaleMin: 1.84, ScaleMax: 4.75},
}

// WATERSPeriodShares is the share of runnables per catalogue period used by
// the generator, renormalized over the nine catalogue periods.
var WATERSPeriodShares = []float64{
	0.03 / 0.85, 0.02 / 0.85, 0.02 / 0.85, 0.25 / 0.85,
	0.25 / 0.85, 0.03 / 0.85, 0.2 / 0.85, 0.01 / 0.85,
	0.04 / 0.85,
}

// Lookup returns the model for period.
func (c Catalogue) Lookup(period float64) (CostModel, error) {
	for _, m := range c {
		if m.Period == period {
			return m, nil
		}
	}
	return CostModel{}, errors.Wrapf(ErrInvalidConfiguration, "no cost model for period %v", period)
}

// Periods lists the catalogue's periods in order.
func (c Catalogue) Periods() []float64 {
	periods := make([]float64, len(c))
	for i, m := range c {
		periods[i] = m.Period
	}
	return periods
}

// Validate checks that the catalogue is usable: distinct positive periods and
// well-formed ranges.
func (c Catalogue) Validate() error {
	if len(c) == 0 {
		return errors.Wrap(ErrInvalidConfiguration, "empty cost catalogue")
	}
	periods := c.Periods()
	slices.Sort(periods)
	if len(slices.Compact(periods)) != len(c) {
		return errors.Wrap(ErrInvalidConfiguration, "duplicate period in cost catalogue")
	}
	for _, m := range c {
		switch {
		case !(m.Period > 0):
			return errors.Wrapf(ErrInvalidConfiguration, "cost model period %v must be positive", m.Period)
		case !(m.Min > 0) || m.Max < m.Min:
			return errors.Wrapf(ErrInvalidConfiguration, "cost model %v has bounds [%v, %v]", m.Period, m.Min, m.Max)
		case !(m.ScaleMin > 0) || m.ScaleMax < m.ScaleMin:
			return errors.Wrapf(ErrInvalidConfiguration, "cost model %v has scaling [%v, %v]", m.Period, m.ScaleMin, m.ScaleMax)
		case m.Shape == Weibull && (!(m.K > 0) || !(m.Rate > 0)):
			return errors.Wrapf(ErrInvalidConfiguration, "cost model %v has Weibull parameters k=%v rate=%v", m.Period, m.K, m.Rate)
		}
	}
	return nil
}

// normalizeShares checks that shares can weight the catalogue and returns a
// copy summing to one.
func (c Catalogue) normalizeShares(shares []float64) ([]float64, error) {
	if len(shares) != len(c) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "%d period shares for %d catalogue periods", len(shares), len(c))
	}
	for _, w := range shares {
		if w < 0 {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "negative period share %v", w)
		}
	}
	total := floats.Sum(shares)
	if !(total > 0) {
		return nil, errors.Wrap(ErrInvalidConfiguration, "period shares sum to zero")
	}
	out := slices.Clone(shares)
	floats.Scale(1/total, out)
	return out, nil
}
