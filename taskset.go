// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

// A TaskSet is an ordered collection of tasks. Each generation call returns a
// fresh set that the caller owns.
type TaskSet []Task

func (ts TaskSet) Len() int {
	return len(ts)
}

// Utilization returns the total utilization of the set.
func (ts TaskSet) Utilization() float64 {
	u := make([]float64, len(ts))
	for i, t := range ts {
		u[i] = t.Utilization()
	}
	return floats.Sum(u)
}

// Periods returns the period of each task in order.
func (ts TaskSet) Periods() []float64 {
	p := make([]float64, len(ts))
	for i, t := range ts {
		p[i] = t.Period
	}
	return p
}

// WCETSum returns the sum of the tasks' worst-case execution times.
func (ts TaskSet) WCETSum() float64 {
	c := make([]float64, len(ts))
	for i, t := range ts {
		c[i] = t.WCET
	}
	return floats.Sum(c)
}

func (ts TaskSet) Clone() TaskSet {
	return slices.Clone(ts)
}

// Validate reports every invariant violation across all tasks.
func (ts TaskSet) Validate() error {
	var err error
	for _, t := range ts {
		err = multierr.Append(err, t.Validate())
	}
	return err
}

// Rename names the tasks T0, T1, ... in their current order.
func (ts TaskSet) Rename() {
	for i := range ts {
		ts[i].Name = fmt.Sprintf("T%d", i)
	}
}

// SortByPeriod orders the set by nondecreasing period, keeping the relative
// order of tasks with equal periods.
func (ts TaskSet) SortByPeriod() {
	slices.SortStableFunc(ts, func(a, b Task) int {
		switch {
		case a.Period < b.Period:
			return -1
		case a.Period > b.Period:
			return 1
		default:
			return 0
		}
	})
}

// Format implements fmt.Formatter. %v prints a one-line summary and %#v
// prints every task on its own line.
func (ts TaskSet) Format(f fmt.State, verb rune) {
	if verb != 'v' {
		panic("unsupported verb")
	}
	if f.Flag('#') {
		ts.Dump(f, "")
	} else {
		_, _ = fmt.Fprintf(f, "TaskSet: taskCount=%d utilization=%.6f", len(ts), ts.Utilization())
	}
}

func (ts TaskSet) Dump(fs fmt.State, indent string) {
	_, _ = fmt.Fprintf(fs, "%sTaskSet: taskCount=%d utilization=%.6f", indent, len(ts), ts.Utilization())
	for _, t := range ts {
		_, _ = fmt.Fprintf(fs, "\n%s  %s", indent, t)
	}
}
