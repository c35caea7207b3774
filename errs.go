// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"github.com/petenewcomb/tsg-go/internal/cerr"
)

// Every error returned by this module wraps one of these kinds; match them
// with errors.Is.
const (
	ErrInvalidConfiguration = cerr.InvalidConfiguration
	ErrNumericDegeneracy    = cerr.NumericDegeneracy
	ErrSamplingExhausted    = cerr.SamplingExhausted
)
