// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go/internal/pe"
)

// Mapping selects how [Generator.Transform] assigns tasks to processing
// elements. Each element starts with capacity 1 and is charged the
// utilization of every task mapped to it.
type Mapping int

const (
	// MappingNone keeps each task's PE.
	MappingNone Mapping = iota
	// MappingWorstFit picks the element with the most remaining capacity.
	MappingWorstFit
	// MappingFirstFit picks the lowest element that still fits the task,
	// falling back to worst fit when none does.
	MappingFirstFit
)

var mappingNames = [...]string{
	MappingNone:     "none",
	MappingWorstFit: "worst-fit",
	MappingFirstFit: "first-fit",
}

func (m Mapping) String() string {
	if m >= 0 && int(m) < len(mappingNames) {
		return mappingNames[m]
	}
	return fmt.Sprintf("Mapping(%d)", int(m))
}

func (m Mapping) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mapping) UnmarshalText(text []byte) error {
	for i, name := range mappingNames {
		if string(text) == name {
			*m = Mapping(i)
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidConfiguration, "unknown mapping %q", text)
}

// TransformConfig controls [Generator.Transform].
type TransformConfig struct {
	// TimeScale multiplies every time after rounding to two decimals.
	TimeScale float64 `toml:"time-scale"`
	// Jitter draws a release jitter in [0, 1000) for each task.
	Jitter  bool    `toml:"jitter"`
	Mapping Mapping `toml:"mapping"`
	PECount int     `toml:"pe-count"`
}

// scaleTime rounds v to two decimals, scales it, and truncates toward zero.
func scaleTime(v, scale float64) float64 {
	return math.Trunc(math.Round(v*100) / 100 * scale)
}

// Transform prepares a generated set for export. Tasks are ordered by period
// and renamed T0, T1, ...; each time is rounded to two decimals, multiplied
// by TimeScale, and truncated to an integer. A WCET that truncates to zero
// becomes one, and BCET is recomputed from the new WCET. Mapping assigns
// processing elements using the utilizations of the untransformed tasks.
// The input set is not modified.
func (g *Generator) Transform(ts TaskSet, cfg TransformConfig) (TaskSet, error) {
	if !(cfg.TimeScale > 0) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "time scale %v must be positive", cfg.TimeScale)
	}
	var pes *pe.Set
	switch cfg.Mapping {
	case MappingNone:
	case MappingWorstFit, MappingFirstFit:
		if cfg.PECount < 1 {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "processing element count %d < 1", cfg.PECount)
		}
		pes = pe.NewSet(cfg.PECount, 1)
	default:
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown mapping %d", int(cfg.Mapping))
	}

	sorted := ts.Clone()
	sorted.SortByPeriod()
	out := make(TaskSet, len(sorted))
	for i, t := range sorted {
		jitter := 0.0
		if cfg.Jitter {
			jitter = scaleTime(g.sampler.Rand().Float64()*1000, cfg.TimeScale)
		}
		wcet := scaleTime(t.WCET, cfg.TimeScale)
		if wcet == 0 {
			wcet = 1
		}
		period := scaleTime(t.Period, cfg.TimeScale)
		deadline := scaleTime(t.Deadline, cfg.TimeScale)
		if period <= 0 || deadline <= 0 {
			return nil, errors.Wrapf(ErrNumericDegeneracy,
				"task %q: period %v or deadline %v vanishes at time scale %v", t.Name, t.Period, t.Deadline, cfg.TimeScale)
		}

		peIndex := t.PE
		if pes != nil {
			u := t.Utilization()
			var e *pe.Element
			if cfg.Mapping == MappingFirstFit {
				e = pes.FirstFit(u)
			}
			if e == nil {
				e = pes.WorstFit()
			}
			pes.Assign(e, u)
			peIndex = e.Index
		}

		out[i] = NewTask(TaskSpec{
			Name:     fmt.Sprintf("T%d", i),
			Jitter:   jitter,
			WCET:     wcet,
			Period:   period,
			Deadline: deadline,
			PE:       peIndex,
		})
	}
	if pes != nil {
		remaining := make([]float64, pes.Len())
		for i := range remaining {
			remaining[i] = pes.Element(i).Remaining
		}
		g.logger.Debug("mapped tasks", zap.Stringer("mapping", cfg.Mapping), zap.Float64s("remaining", remaining))
	}
	return out, nil
}
