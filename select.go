// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"github.com/gammazero/deque"
	"github.com/pkg/errors"
)

// SelectByUtilization picks tasks from pool, in pool order, until their total
// utilization lies in [target, target+threshold].
//
// Tasks are taken greedily until the running total first exceeds target. If
// that overshoots target+threshold, the crossing task is dropped and the rest
// of the pool is scanned in order, keeping each task that still fits under
// target+threshold, until target is reached. The scan looks one task ahead at
// a time and never revisits a skipped task. Running out of pool first is
// [ErrSamplingExhausted].
func SelectByUtilization(pool TaskSet, target, threshold float64) (TaskSet, error) {
	if !(target > 0) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "target utilization %v must be positive", target)
	}
	if !(threshold >= 0) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "utilization threshold %v must not be negative", threshold)
	}

	var remaining deque.Deque[Task]
	for _, t := range pool {
		remaining.PushBack(t)
	}

	var selected TaskSet
	total := 0.0
	for total <= target {
		if remaining.Len() == 0 {
			return nil, errors.Wrapf(ErrSamplingExhausted,
				"pool of %d tasks reaches only utilization %v of %v", len(pool), total, target)
		}
		t := remaining.PopFront()
		selected = append(selected, t)
		total += t.Utilization()
	}
	if total <= target+threshold {
		return selected, nil
	}

	crossing := selected[len(selected)-1]
	selected = selected[:len(selected)-1]
	total -= crossing.Utilization()
	for total < target {
		if remaining.Len() == 0 {
			return nil, errors.Wrapf(ErrSamplingExhausted,
				"no remaining task fits utilization window [%v, %v] from %v", target, target+threshold, total)
		}
		t := remaining.PopFront()
		if u := t.Utilization(); total+u <= target+threshold {
			selected = append(selected, t)
			total += u
		}
	}
	return selected, nil
}
