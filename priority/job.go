// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package priority expands a task set into the jobs released over one
// hyperperiod and assigns each job a fixed priority.
package priority

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/internal/cerr"
)

const ErrInvalidConfiguration = cerr.InvalidConfiguration

// DefaultMaxJobs bounds [Expand] so that a set with coprime periods cannot
// exhaust memory.
const DefaultMaxJobs = 1 << 22

// A Job is one release of a task within the hyperperiod.
type Job struct {
	Task tsg.Task
	// TaskIndex is the position of Task in the expanded set.
	TaskIndex int
	Instance  int
	// The job may arrive anywhere in [EarliestArrival, LatestArrival].
	EarliestArrival  float64
	LatestArrival    float64
	AbsoluteDeadline float64
	// Priority is 0 for the most urgent job.
	Priority int
}

func newJob(t tsg.Task, taskIndex, instance int) Job {
	earliest := t.Period * float64(instance)
	return Job{
		Task:             t,
		TaskIndex:        taskIndex,
		Instance:         instance,
		EarliestArrival:  earliest,
		LatestArrival:    earliest + t.Jitter,
		AbsoluteDeadline: earliest + t.Deadline,
	}
}

// Name returns "<task>,<instance>".
func (j Job) Name() string {
	return fmt.Sprintf("%s,%d", j.Task.Name, j.Instance)
}

func (j Job) String() string {
	return fmt.Sprintf("%-7s\tPE=%2d\tBCET=%-5.1f\tWCET=%-5.1f\tArrival window=[%7v, %7v]\tAbs. deadline=%7v\tPriority=%4d",
		j.Name(), j.Task.PE, j.Task.BCET, j.Task.WCET, j.EarliestArrival, j.LatestArrival, j.AbsoluteDeadline, j.Priority)
}

func gcd[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// lcm returns the least common multiple of positive a and b, and false if it
// overflows T.
func lcm[T constraints.Integer](a, b T) (T, bool) {
	m := a / gcd(a, b)
	l := m * b
	if l/b != m {
		return 0, false
	}
	return l, true
}

func integralPeriod(t tsg.Task) (int64, error) {
	if !(t.Period >= 1) || t.Period != math.Trunc(t.Period) || t.Period > math.MaxInt64/2 {
		return 0, errors.Wrapf(ErrInvalidConfiguration, "task %q: period %v is not a positive integer", t.Name, t.Period)
	}
	return int64(t.Period), nil
}

// Hyperperiod returns the least common multiple of the task periods, which
// must be positive integers. An empty set has hyperperiod 1.
func Hyperperiod(ts tsg.TaskSet) (int64, error) {
	h := int64(1)
	for _, t := range ts {
		p, err := integralPeriod(t)
		if err != nil {
			return 0, err
		}
		var ok bool
		if h, ok = lcm(h, p); !ok {
			return 0, errors.Wrapf(ErrInvalidConfiguration, "hyperperiod overflows at task %q", t.Name)
		}
	}
	return h, nil
}

// Expand lists every job released in [0, hyperperiod), task by task. It
// fails if the expansion would exceed [DefaultMaxJobs].
func Expand(ts tsg.TaskSet) ([]Job, int64, error) {
	h, err := Hyperperiod(ts)
	if err != nil {
		return nil, 0, err
	}
	total := int64(0)
	for _, t := range ts {
		total += h / int64(t.Period)
		if total > DefaultMaxJobs {
			return nil, 0, errors.Wrapf(ErrInvalidConfiguration,
				"hyperperiod %d releases more than %d jobs", h, DefaultMaxJobs)
		}
	}
	jobs := make([]Job, 0, total)
	for i, t := range ts {
		for k := range int(h / int64(t.Period)) {
			jobs = append(jobs, newJob(t, i, k))
		}
	}
	return jobs, h, nil
}
