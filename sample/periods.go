// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sample

import (
	"fmt"
	"math"
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// PeriodDistribution selects how continuous periods are drawn between a
// minimum and a maximum.
type PeriodDistribution int

const (
	LogUniform PeriodDistribution = iota
	Uniform
)

func (d PeriodDistribution) String() string {
	switch d {
	case LogUniform:
		return "logunif"
	case Uniform:
		return "unif"
	default:
		return fmt.Sprintf("PeriodDistribution(%d)", int(d))
	}
}

// ParsePeriodDistribution accepts the names produced by String.
func ParsePeriodDistribution(name string) (PeriodDistribution, error) {
	switch name {
	case "logunif", "loguniform", "log-uniform":
		return LogUniform, nil
	case "unif", "uniform":
		return Uniform, nil
	default:
		return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown period distribution %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler so configurations can name
// the distribution.
func (d PeriodDistribution) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *PeriodDistribution) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriodDistribution(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func checkPeriodRange(min, max float64) error {
	if !(min > 0) || !(max >= min) || math.IsInf(max, 0) {
		return errors.Wrapf(ErrInvalidConfiguration, "period range [%v, %v] must be positive and ordered", min, max)
	}
	return nil
}

// Periods draws n periods in [min, max] from dist. When rounded is set each
// period is rounded to the nearest integer, never below one.
func (s *Sampler) Periods(n int, min, max float64, dist PeriodDistribution, rounded bool) ([]float64, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "period count %d < 0", n)
	}
	if err := checkPeriodRange(min, max); err != nil {
		return nil, err
	}

	var draw func() float64
	switch dist {
	case LogUniform:
		d := distuv.Uniform{Min: math.Log(min), Max: math.Log(max), Src: s.src}
		draw = func() float64 { return math.Exp(d.Rand()) }
	case Uniform:
		d := distuv.Uniform{Min: min, Max: max, Src: s.src}
		draw = d.Rand
	default:
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown period distribution %v", dist)
	}

	periods := make([]float64, n)
	for i := range periods {
		p := draw()
		if rounded {
			p = math.Max(1, math.RoundToEven(p))
		}
		periods[i] = p
	}
	return periods, nil
}

// SnappedPeriods draws log-uniform periods in [min, max] and rounds each one
// down to the largest entry of predefined that does not exceed it. Draws that
// fall below every predefined value take the smallest one. The maximum should
// exceed the largest predefined value for that value to be reachable.
func (s *Sampler) SnappedPeriods(n int, min, max float64, predefined []float64) ([]float64, error) {
	if len(predefined) == 0 {
		return nil, errors.Wrap(ErrInvalidConfiguration, "predefined period set is empty")
	}
	raw, err := s.Periods(n, min, max, LogUniform, false)
	if err != nil {
		return nil, err
	}
	descending := slices.Clone(predefined)
	slices.Sort(descending)
	slices.Reverse(descending)
	for i, p := range raw {
		snapped := descending[len(descending)-1]
		for _, r := range descending {
			if p >= r {
				snapped = r
				break
			}
		}
		raw[i] = snapped
	}
	return raw, nil
}

// GranularPeriods draws n periods in [min, max+gran) from dist and floors
// each one to a multiple of gran, following Emberson et al.
func (s *Sampler) GranularPeriods(n int, min, max, gran float64, dist PeriodDistribution) ([]float64, error) {
	if !(gran > 0) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "period granularity %v must be positive", gran)
	}
	if min < gran {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "minimum period %v is below granularity %v", min, gran)
	}
	periods, err := s.Periods(n, min, max+gran, dist, false)
	if err != nil {
		return nil, err
	}
	for i, p := range periods {
		periods[i] = math.Max(gran, math.Floor(p/gran)*gran)
	}
	return periods, nil
}
