// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"cmp"

	"github.com/addrummond/heap"
	"github.com/pkg/errors"
)

type periodGroup struct {
	Period  float64
	Members []int
}

func (a *periodGroup) Cmp(b *periodGroup) int {
	return cmp.Compare(a.Period, b.Period)
}

// groupByPeriod returns the indices of tasks sharing each period, in task
// order, with periods ordered shortest first.
func groupByPeriod(tasks TaskSet) heap.Heap[periodGroup, heap.Min] {
	var order []float64
	members := make(map[float64][]int)
	for i, t := range tasks {
		if _, ok := members[t.Period]; !ok {
			order = append(order, t.Period)
		}
		members[t.Period] = append(members[t.Period], i)
	}
	var groups heap.Heap[periodGroup, heap.Min]
	for _, p := range order {
		heap.PushOrderable(&groups, periodGroup{Period: p, Members: members[p]})
	}
	return groups
}

// MergeDown reduces tasks to count tasks by folding tasks that share a period
// into one task whose WCET and BCET are the sums of the folded ones. Periods
// are visited shortest first and tasks within a period in set order. A
// folded task never exceeds utilization 1; a task that would push it past 1
// starts a new folded task instead. Merging stops as soon as count is
// reached, and every task not yet visited is appended unchanged in set
// order. The WCET sum of the result equals that of tasks.
//
// Sets already at or below count are returned as a copy. If folding every
// period still leaves more than count tasks, the error is
// [ErrSamplingExhausted].
func MergeDown(tasks TaskSet, count int) (TaskSet, error) {
	if count < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "merge target %d < 1", count)
	}
	if len(tasks) <= count {
		return tasks.Clone(), nil
	}

	groups := groupByPeriod(tasks)
	visited := make([]bool, len(tasks))
	remaining := len(tasks)
	merged := make(TaskSet, 0, count)

	for remaining > count {
		group, ok := heap.PopOrderable(&groups)
		if !ok {
			return nil, errors.Wrapf(ErrSamplingExhausted,
				"%d tasks remain after merging every period, want %d", remaining, count)
		}
		var acc *Task
		for _, i := range group.Members {
			if remaining == count {
				break
			}
			t := tasks[i]
			visited[i] = true
			switch {
			case acc == nil:
				acc = &t
			case (acc.WCET+t.WCET)/group.Period <= 1:
				acc.WCET += t.WCET
				acc.BCET += t.BCET
				remaining--
			default:
				merged = append(merged, *acc)
				acc = &t
			}
		}
		if acc != nil {
			merged = append(merged, *acc)
		}
	}

	for i, t := range tasks {
		if !visited[i] {
			merged = append(merged, t)
		}
	}
	return merged, nil
}
