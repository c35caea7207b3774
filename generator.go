// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go/sample"
)

// A Generator assembles task sets from one reseedable random stream. It is
// not safe for concurrent use.
type Generator struct {
	sampler   *sample.Sampler
	logger    *zap.Logger
	catalogue sample.Catalogue
}

// Option configures a [Generator].
type Option func(*Generator)

// WithLogger attaches a logger for debug output about retries and merges.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithCatalogue replaces [sample.WATERSCatalogue] as the source of WATERS
// periods and costs.
func WithCatalogue(c sample.Catalogue) Option {
	return func(g *Generator) {
		g.catalogue = c
	}
}

// NewGenerator returns a generator whose stream is seeded with seed.
func NewGenerator(seed uint64, opts ...Option) *Generator {
	g := &Generator{
		logger:    zap.NewNop(),
		catalogue: sample.WATERSCatalogue,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.sampler = sample.NewSampler(seed, sample.WithLogger(g.logger))
	return g
}

// Sampler exposes the generator's stream so that collaborators such as the
// DAG builder can continue it.
func (g *Generator) Sampler() *sample.Sampler {
	return g.sampler
}

// Reseed restarts the generator's stream.
func (g *Generator) Reseed(seed uint64) {
	g.sampler.Reseed(seed)
}

// Generate builds one task set as cfg describes. Tasks have implicit
// deadlines and are named T0, T1, ... in output order.
func (g *Generator) Generate(cfg *Config) (TaskSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ts, err := g.generate(cfg)
	if err != nil {
		return nil, err
	}
	ts.Rename()
	g.logger.Debug("generated task set",
		zap.Stringer("strategy", cfg.Strategy),
		zap.Int("tasks", len(ts)),
		zap.Float64("utilization", ts.Utilization()),
	)
	return ts, nil
}

// GenerateSets builds cfg.SetCount independent task sets.
func (g *Generator) GenerateSets(cfg *Config) ([]TaskSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sets := make([]TaskSet, 0, cfg.SetCount)
	for range cfg.SetCount {
		ts, err := g.Generate(cfg)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ts)
	}
	return sets, nil
}

func (g *Generator) generate(cfg *Config) (TaskSet, error) {
	switch cfg.Strategy {
	case StrategyWATERS:
		return g.generateWATERS(cfg)
	case StrategyUUniFast:
		return g.generateUUniFast(cfg)
	case StrategyEmberson:
		return g.generateEmberson(cfg)
	case StrategyWATERSFixedSum:
		return g.generateWATERSFixedSum(cfg)
	default:
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unsupported strategy %d", int(cfg.Strategy))
	}
}

// generateWATERS regenerates the runnable pool until one selection lands
// inside the utilization window and, when merging, merges down to the
// requested size. Without merging the selection is kept at whatever size it
// reached.
func (g *Generator) generateWATERS(cfg *Config) (TaskSet, error) {
	wc := &cfg.WATERS
	lo, hi := cfg.Utilization-wc.Threshold, cfg.Utilization+wc.Threshold
	// Merging reassociates floating-point sums.
	const slack = 1e-9

	sampler := sample.NewSamplerFromSource(g.sampler.Source(),
		sample.WithLogger(g.logger),
		sample.WithMaxRejectionRounds(cfg.Limits.MaxRejectionRounds),
	)

	var lastErr error
	for attempt := 1; attempt <= cfg.Limits.MaxAttempts; attempt++ {
		runnables, err := sampler.Runnables(g.catalogue, wc.PeriodShares, wc.PoolSize, wc.Scaling)
		if err != nil {
			if errors.Is(err, ErrInvalidConfiguration) {
				return nil, err
			}
			lastErr = err
			continue
		}
		pool := make(TaskSet, len(runnables))
		for i, r := range runnables {
			pool[i] = NewTask(TaskSpec{WCET: r.Cost, Period: r.Period})
		}

		ts, err := SelectByUtilization(pool, cfg.Utilization, wc.Threshold)
		if err == nil && wc.MergeDown {
			ts, err = MergeDown(ts, cfg.TaskCount)
		}
		if err != nil {
			lastErr = err
			g.logger.Debug("waters attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}

		u := ts.Utilization()
		sized := !wc.MergeDown || len(ts) == cfg.TaskCount
		if sized && u >= lo-slack && u <= hi+slack {
			g.logger.Debug("waters attempt accepted", zap.Int("attempt", attempt), zap.Float64("utilization", u))
			return ts, nil
		}
		g.logger.Debug("waters attempt rejected",
			zap.Int("attempt", attempt),
			zap.Int("tasks", len(ts)),
			zap.Float64("utilization", u),
		)
	}
	if lastErr != nil {
		return nil, errors.Wrapf(ErrSamplingExhausted,
			"no waters set of %d tasks within [%v, %v] after %d attempts (last: %v)",
			cfg.TaskCount, lo, hi, cfg.Limits.MaxAttempts, lastErr)
	}
	return nil, errors.Wrapf(ErrSamplingExhausted,
		"no waters set of %d tasks within [%v, %v] after %d attempts", cfg.TaskCount, lo, hi, cfg.Limits.MaxAttempts)
}

func (g *Generator) generateUUniFast(cfg *Config) (TaskSet, error) {
	uc := &cfg.UUniFast
	utilizations, err := g.sampler.UUniFast(cfg.TaskCount, cfg.Utilization)
	if err != nil {
		return nil, err
	}
	var periods []float64
	if len(uc.Predefined) > 0 {
		periods, err = g.sampler.SnappedPeriods(cfg.TaskCount, uc.MinPeriod, uc.MaxPeriod, uc.Predefined)
	} else {
		periods, err = g.sampler.Periods(cfg.TaskCount, uc.MinPeriod, uc.MaxPeriod, sample.LogUniform, cfg.Round)
	}
	if err != nil {
		return nil, err
	}
	return pairTasks(utilizations, periods, false), nil
}

func (g *Generator) generateEmberson(cfg *Config) (TaskSet, error) {
	ec := &cfg.Emberson
	rows, err := g.sampler.RandFixedSum(cfg.TaskCount, cfg.Utilization, 1)
	if err != nil {
		return nil, err
	}
	periods, err := g.sampler.GranularPeriods(cfg.TaskCount, ec.MinPeriod, ec.MaxPeriod, ec.Granularity, ec.Distribution)
	if err != nil {
		return nil, err
	}
	return pairTasks(rows[0], periods, cfg.Round), nil
}

func (g *Generator) generateWATERSFixedSum(cfg *Config) (TaskSet, error) {
	periods, err := g.sampler.CataloguePeriods(g.catalogue, cfg.WATERS.PeriodShares, cfg.TaskCount)
	if err != nil {
		return nil, err
	}
	rows, err := g.sampler.RandFixedSum(cfg.TaskCount, cfg.Utilization, 1)
	if err != nil {
		return nil, err
	}
	ts := pairTasks(rows[0], periods, false)
	g.sampler.Shuffle(len(ts), func(i, j int) {
		ts[i], ts[j] = ts[j], ts[i]
	})
	return ts, nil
}

// pairTasks builds implicit-deadline tasks with WCET = u × period. With
// roundWCET each WCET is rounded to an integer no smaller than one.
func pairTasks(utilizations, periods []float64, roundWCET bool) TaskSet {
	ts := make(TaskSet, len(utilizations))
	for i, u := range utilizations {
		wcet := u * periods[i]
		if roundWCET {
			wcet = math.Max(1, math.RoundToEven(wcet))
		}
		ts[i] = NewTask(TaskSpec{WCET: wcet, Period: periods[i]})
	}
	return ts
}
