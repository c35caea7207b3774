// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

// CombineSamePeriod folds every task into the first task with the same
// period, summing WCET and BCET. The result keeps first-occurrence order and
// does not modify ts.
func CombineSamePeriod(ts TaskSet) TaskSet {
	combined := make(TaskSet, 0, len(ts))
	index := make(map[float64]int)
	for _, t := range ts {
		if i, ok := index[t.Period]; ok {
			combined[i].WCET += t.WCET
			combined[i].BCET += t.BCET
			continue
		}
		index[t.Period] = len(combined)
		combined = append(combined, t)
	}
	return combined
}

// CombineLowestPeriod sorts ts by period and folds only the tasks sharing the
// shortest period into one. Other tasks are kept as they are.
func CombineLowestPeriod(ts TaskSet) TaskSet {
	if len(ts) == 0 {
		return nil
	}
	sorted := ts.Clone()
	sorted.SortByPeriod()
	lowest := sorted[0].Period

	combined := make(TaskSet, 0, len(sorted))
	combined = append(combined, sorted[0])
	for _, t := range sorted[1:] {
		if t.Period == lowest {
			combined[0].WCET += t.WCET
			combined[0].BCET += t.BCET
			continue
		}
		combined = append(combined, t)
	}
	return combined
}
