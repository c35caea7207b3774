// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sample provides the statistical draws used to synthesize real-time
// task sets: the UUniFast utilization splitter, Stafford's exact fixed-sum
// simplex sampler, period generators, and the WATERS empirical execution-cost
// model with its batch rejection sampler.
//
// Every draw consumes a single reseedable pseudo-random stream owned by a
// [Sampler], so two samplers created with the same seed and driven by the
// same sequence of calls produce identical output.
package sample
