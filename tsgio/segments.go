// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsgio

import (
	"cmp"
	"io"
	"slices"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type segmentSet struct {
	TaskGraphs []taskGraph `yaml:"task graphs"`
}

type taskGraph struct {
	ID       int       `yaml:"id"`
	Segments []segment `yaml:"segments"`
}

type segment struct {
	ID         int   `yaml:"id"`
	ArrivalMin int64 `yaml:"arrival min"`
	ArrivalMax int64 `yaml:"arrival max"`
	CostMin    int64 `yaml:"cost min"`
	CostMax    int64 `yaml:"cost max"`
	Deadline   int64 `yaml:"deadline"`
	Priority   int   `yaml:"priority"`
}

// WriteSegmentSet writes jobs as a YAML segment set: one task graph per task
// ID in ascending order, each listing that task's jobs as segments in input
// order.
func WriteSegmentSet(w io.Writer, jobs []SAGJob) error {
	sorted := slices.Clone(jobs)
	slices.SortStableFunc(sorted, func(a, b SAGJob) int {
		return cmp.Compare(a.TaskID, b.TaskID)
	})

	var doc segmentSet
	for _, j := range sorted {
		if n := len(doc.TaskGraphs); n == 0 || doc.TaskGraphs[n-1].ID != j.TaskID {
			doc.TaskGraphs = append(doc.TaskGraphs, taskGraph{ID: j.TaskID})
		}
		g := &doc.TaskGraphs[len(doc.TaskGraphs)-1]
		g.Segments = append(g.Segments, segment{
			ID:         j.JobID,
			ArrivalMin: j.ArrivalMin,
			ArrivalMax: j.ArrivalMax,
			CostMin:    j.CostMin,
			CostMax:    j.CostMax,
			Deadline:   j.Deadline,
			Priority:   j.Priority,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(enc.Close())
}

// ReadSegmentSet parses a document written by [WriteSegmentSet] back into
// jobs, ordered as they appear.
func ReadSegmentSet(r io.Reader) ([]SAGJob, error) {
	var doc segmentSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	var jobs []SAGJob
	for _, g := range doc.TaskGraphs {
		for _, s := range g.Segments {
			jobs = append(jobs, SAGJob{
				TaskID:     g.ID,
				JobID:      s.ID,
				ArrivalMin: s.ArrivalMin,
				ArrivalMax: s.ArrivalMax,
				CostMin:    s.CostMin,
				CostMax:    s.CostMax,
				Deadline:   s.Deadline,
				Priority:   s.Priority,
			})
		}
	}
	return jobs, nil
}
