// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cerr defines the constant error kinds shared by the generator
// packages. Each public package re-exports them so callers can match a kind
// with errors.Is regardless of which package reported it.
package cerr

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// InvalidConfiguration reports an unsupported strategy, an unknown
	// catalogue period, or a shape that the inputs cannot satisfy.
	InvalidConfiguration = Error("invalid configuration")

	// NumericDegeneracy reports a sampler input with no feasible sample,
	// such as a fixed-sum target outside [0, n].
	NumericDegeneracy = Error("numeric degeneracy")

	// SamplingExhausted reports a bounded sampling loop that ran out of
	// rounds, attempts, or pool entries before its constraint held.
	SamplingExhausted = Error("sampling exhausted")
)
