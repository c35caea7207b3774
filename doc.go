// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package tsg synthesizes artificial real-time task sets for scheduling
// research. Given a target utilization, a task count, and a [Strategy], a
// [Generator] produces a [TaskSet] whose total utilization matches the target
// within the strategy's tolerance and whose tasks all have implicit deadlines.
//
// Four strategies are provided. [StrategyWATERS] draws a large pool of
// runnables from the empirical automotive model published with the WATERS
// 2015 benchmark, picks a subset whose utilization lands in the requested
// window, and merges same-period runnables until the requested task count is
// reached. [StrategyUUniFast] splits the utilization with UUniFast and pairs
// it with log-uniform periods. [StrategyEmberson] uses Stafford's exact
// fixed-sum sampler with granular periods, following Emberson, Stafford and
// Davis. [StrategyWATERSFixedSum] pairs fixed-sum utilizations with periods
// drawn from the WATERS catalogue.
//
// Generated sets hold raw floating-point times. [Generator.Transform] turns
// them into the integral, scaled, and optionally PE-mapped form expected by
// downstream analysis tools. The dag, priority, and tsgio packages build
// precedence graphs, job sets, and file artifacts from the result.
//
// All randomness flows from one reseedable stream per [Generator], so a seed
// and a configuration fully determine the output.
package tsg
