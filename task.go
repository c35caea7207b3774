// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"fmt"
	"math"

	"github.com/markphelps/optional"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// A Task is one periodic real-time task. Times share a single unit chosen by
// the producer: milliseconds for freshly generated sets, scaled integral
// ticks after [Generator.Transform].
type Task struct {
	Name string
	// Jitter is the width of the arrival window that opens at each period
	// boundary. Some inputs call it the offset or phase.
	Jitter   float64
	BCET     float64
	WCET     float64
	Period   float64
	Deadline float64
	// PE is the processing element the task is mapped to.
	PE int
}

// TaskSpec describes a task to build with [NewTask].
type TaskSpec struct {
	Name   string
	Jitter float64
	// BCET defaults to [DefaultBCET] of WCET when absent.
	BCET   optional.Float64
	WCET   float64
	Period float64
	// Deadline defaults to Period (an implicit deadline) when zero.
	Deadline float64
	PE       int
}

// DefaultBCET returns ceil(0.7 × wcet), capped at wcet for sub-unit times.
func DefaultBCET(wcet float64) float64 {
	return math.Min(math.Ceil(0.7*wcet), wcet)
}

// NewTask builds a task from spec, filling in defaults.
func NewTask(spec TaskSpec) Task {
	deadline := spec.Deadline
	if deadline == 0 {
		deadline = spec.Period
	}
	return Task{
		Name:     spec.Name,
		Jitter:   spec.Jitter,
		BCET:     spec.BCET.OrElse(DefaultBCET(spec.WCET)),
		WCET:     spec.WCET,
		Period:   spec.Period,
		Deadline: deadline,
		PE:       spec.PE,
	}
}

// Utilization returns WCET/Period.
func (t Task) Utilization() float64 {
	return t.WCET / t.Period
}

// Validate reports every field that violates the task invariants.
func (t Task) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidConfiguration, format, args...))
		}
	}
	check(t.WCET > 0, "task %q: wcet %v must be positive", t.Name, t.WCET)
	check(t.Period > 0, "task %q: period %v must be positive", t.Name, t.Period)
	check(t.Deadline > 0, "task %q: deadline %v must be positive", t.Name, t.Deadline)
	check(t.BCET >= 0 && t.BCET <= t.WCET, "task %q: bcet %v must lie in [0, wcet %v]", t.Name, t.BCET, t.WCET)
	check(t.Jitter >= 0, "task %q: jitter %v must not be negative", t.Name, t.Jitter)
	check(t.PE >= 0, "task %q: processing element %d must not be negative", t.Name, t.PE)
	return err
}

func (t Task) String() string {
	return fmt.Sprintf("%-9s PE=%2d BCET=%-5.1f WCET=%-5.1f Period=%7v Deadline=%7v",
		t.Name, t.PE, t.BCET, t.WCET, t.Period, t.Deadline)
}
