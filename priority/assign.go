// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package priority

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/addrummond/heap"
	"github.com/pkg/errors"

	"github.com/petenewcomb/tsg-go"
)

// Method selects the key jobs are ranked by.
type Method int

const (
	// RateMonotonic ranks by task period.
	RateMonotonic Method = iota
	// DeadlineMonotonic ranks by relative deadline.
	DeadlineMonotonic
	// EDF ranks by absolute deadline.
	EDF
)

var methodNames = [...]string{
	RateMonotonic:     "rm",
	DeadlineMonotonic: "dm",
	EDF:               "edf",
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts a method name or its numeric selector.
func ParseMethod(text string) (Method, error) {
	lower := strings.ToLower(text)
	for i, name := range methodNames {
		if lower == name {
			return Method(i), nil
		}
	}
	if n, err := strconv.Atoi(text); err == nil && n >= 0 && n < len(methodNames) {
		return Method(n), nil
	}
	return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown priority method %q", text)
}

func (m Method) key(j *Job) (float64, error) {
	switch m {
	case RateMonotonic:
		return j.Task.Period, nil
	case DeadlineMonotonic:
		return j.Task.Deadline, nil
	case EDF:
		return j.AbsoluteDeadline, nil
	default:
		return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown priority method %d", int(m))
	}
}

type rankedJob struct {
	key float64
	seq int
}

func (a *rankedJob) Cmp(b *rankedJob) int {
	if c := cmp.Compare(a.key, b.key); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// Assign expands ts over its hyperperiod and numbers the jobs 0, 1, ... by
// the method's key, breaking ties by expansion order. The jobs are returned
// sorted by name.
func Assign(ts tsg.TaskSet, method Method) ([]Job, error) {
	jobs, _, err := Expand(ts)
	if err != nil {
		return nil, err
	}
	var ranking heap.Heap[rankedJob, heap.Min]
	for i := range jobs {
		key, err := method.key(&jobs[i])
		if err != nil {
			return nil, err
		}
		heap.PushOrderable(&ranking, rankedJob{key: key, seq: i})
	}
	for priority := 0; ; priority++ {
		r, ok := heap.PopOrderable(&ranking)
		if !ok {
			break
		}
		jobs[r.seq].Priority = priority
	}
	slices.SortStableFunc(jobs, func(a, b Job) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return jobs, nil
}

func (m Method) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(methodNames) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown priority method %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
