// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"math"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/petenewcomb/tsg-go/sample"
)

var DefaultConfig = Config{
	Strategy:    StrategyUUniFast,
	TaskCount:   15,
	SetCount:    1,
	Utilization: 0.5,
	PECount:     4,
	WATERS: WATERSConfig{
		PeriodShares: sample.WATERSPeriodShares,
		Threshold:    0.1,
		PoolSize:     3000,
		Scaling:      true,
		MergeDown:    true,
	},
	UUniFast: UUniFastConfig{
		MinPeriod: 1,
		MaxPeriod: 100,
	},
	Emberson: EmbersonConfig{
		MinPeriod:    10,
		MaxPeriod:    100,
		Granularity:  5,
		Distribution: sample.LogUniform,
	},
	Limits: LimitsConfig{
		MaxAttempts:        100,
		MaxRejectionRounds: sample.DefaultMaxRejectionRounds,
	},
}

// Config selects a strategy and its parameters. Start from a copy of
// [DefaultConfig]; the zero value is not usable.
type Config struct {
	Strategy  Strategy `toml:"strategy"`
	TaskCount int      `toml:"task-count"`
	SetCount  int      `toml:"set-count"`
	// Utilization is the target total utilization, 0.5 for 50%.
	Utilization float64 `toml:"utilization"`
	PECount     int     `toml:"pe-count"`
	// Round rounds UUniFast periods and Emberson execution times to
	// integers.
	Round bool `toml:"round"`

	WATERS   WATERSConfig   `toml:"waters"`
	UUniFast UUniFastConfig `toml:"uunifast"`
	Emberson EmbersonConfig `toml:"emberson"`
	Limits   LimitsConfig   `toml:"limits"`
}

type WATERSConfig struct {
	// PeriodShares weights the catalogue periods, one entry per period.
	PeriodShares []float64 `toml:"period-shares"`
	// Threshold is the accepted distance between the target and the
	// generated utilization.
	Threshold float64 `toml:"threshold"`
	// PoolSize is the number of runnables drawn per attempt.
	PoolSize int `toml:"pool-size"`
	// Scaling inflates average-case costs to worst-case costs.
	Scaling bool `toml:"scaling"`
	// MergeDown folds same-period runnables until TaskCount is reached.
	// Only runnables sharing a period fold together, so a selection never
	// merges below its number of distinct periods; counts under the
	// catalogue's period count often exhaust MaxAttempts. With MergeDown
	// unset TaskCount is ignored and the selection is returned as drawn.
	MergeDown bool `toml:"merge-down"`
}

type UUniFastConfig struct {
	MinPeriod float64 `toml:"min-period"`
	MaxPeriod float64 `toml:"max-period"`
	// Predefined, when non-empty, snaps each drawn period down to the
	// largest listed value not above it.
	Predefined []float64 `toml:"predefined-periods"`
}

type EmbersonConfig struct {
	MinPeriod    float64                   `toml:"min-period"`
	MaxPeriod    float64                   `toml:"max-period"`
	Granularity  float64                   `toml:"granularity"`
	Distribution sample.PeriodDistribution `toml:"distribution"`
}

type LimitsConfig struct {
	// MaxAttempts bounds WATERS pool regeneration.
	MaxAttempts int `toml:"max-attempts"`
	// MaxRejectionRounds bounds each batch of WATERS cost redraws.
	MaxRejectionRounds int `toml:"max-rejection-rounds"`
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	clone.WATERS.PeriodShares = slices.Clone(c.WATERS.PeriodShares)
	clone.UUniFast.Predefined = slices.Clone(c.UUniFast.Predefined)
	return &clone
}

// Validate reports every parameter that no strategy could accept, plus those
// the selected strategy needs.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidConfiguration, format, args...))
		}
	}
	check(c.Strategy.valid(), "unsupported strategy %d", int(c.Strategy))
	check(c.TaskCount >= 1, "task count %d < 1", c.TaskCount)
	check(c.SetCount >= 1, "set count %d < 1", c.SetCount)
	check(c.Utilization > 0 && !math.IsInf(c.Utilization, 0), "utilization %v must be positive", c.Utilization)
	check(c.PECount >= 1, "processing element count %d < 1", c.PECount)
	check(c.Limits.MaxAttempts >= 1, "max attempts %d < 1", c.Limits.MaxAttempts)
	check(c.Limits.MaxRejectionRounds >= 1, "max rejection rounds %d < 1", c.Limits.MaxRejectionRounds)

	switch c.Strategy {
	case StrategyWATERS:
		check(c.WATERS.Threshold >= 0, "waters threshold %v < 0", c.WATERS.Threshold)
		check(c.WATERS.PoolSize >= c.TaskCount, "waters pool size %d below task count %d", c.WATERS.PoolSize, c.TaskCount)
	case StrategyUUniFast:
		check(c.UUniFast.MinPeriod > 0 && c.UUniFast.MaxPeriod >= c.UUniFast.MinPeriod,
			"uunifast period range [%v, %v]", c.UUniFast.MinPeriod, c.UUniFast.MaxPeriod)
	case StrategyEmberson:
		check(c.Emberson.Granularity > 0, "emberson granularity %v must be positive", c.Emberson.Granularity)
		check(c.Emberson.MinPeriod >= c.Emberson.Granularity && c.Emberson.MaxPeriod >= c.Emberson.MinPeriod,
			"emberson period range [%v, %v]", c.Emberson.MinPeriod, c.Emberson.MaxPeriod)
	}
	return err
}
