// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sample

import (
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/petenewcomb/tsg-go/internal/cerr"
)

const (
	ErrInvalidConfiguration = cerr.InvalidConfiguration
	ErrNumericDegeneracy    = cerr.NumericDegeneracy
	ErrSamplingExhausted    = cerr.SamplingExhausted
)

// DefaultMaxRejectionRounds bounds the batch rejection loop in
// [Sampler.Costs]. The WATERS bounds reject well under one percent of draws
// per period, so the default is never approached in practice.
const DefaultMaxRejectionRounds = 1000

// Sampler owns the pseudo-random stream used by all draws in this package.
// It is not safe for concurrent use.
type Sampler struct {
	src                rand.Source
	rng                *rand.Rand
	logger             *zap.Logger
	maxRejectionRounds int
}

// Option configures a [Sampler].
type Option func(*Sampler)

// WithLogger attaches a logger for debug output about rejection rounds.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sampler) {
		s.logger = logger
	}
}

// WithMaxRejectionRounds overrides [DefaultMaxRejectionRounds].
func WithMaxRejectionRounds(rounds int) Option {
	return func(s *Sampler) {
		if rounds < 1 {
			panic("max rejection rounds must be positive")
		}
		s.maxRejectionRounds = rounds
	}
}

// NewSampler returns a sampler whose stream is seeded with seed.
func NewSampler(seed uint64, opts ...Option) *Sampler {
	return NewSamplerFromSource(rand.NewSource(seed), opts...)
}

// NewSamplerFromSource returns a sampler drawing from src. The source must
// not be shared with other consumers if reproducibility matters.
func NewSamplerFromSource(src rand.Source, opts ...Option) *Sampler {
	if src == nil {
		panic("source must be non-nil")
	}
	s := &Sampler{
		src:                src,
		rng:                rand.New(src),
		logger:             zap.NewNop(),
		maxRejectionRounds: DefaultMaxRejectionRounds,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reseed restarts the stream from seed.
func (s *Sampler) Reseed(seed uint64) {
	s.src.Seed(seed)
}

// Source returns the underlying stream, for collaborators such as the DAG
// builder that should share it.
func (s *Sampler) Source() rand.Source {
	return s.src
}

// Rand returns a generator view of the underlying stream.
func (s *Sampler) Rand() *rand.Rand {
	return s.rng
}

// Shuffle permutes n elements in place using the sampler's stream.
func (s *Sampler) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}
