// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsgio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/petenewcomb/tsg-go/priority"
)

// JobFormat selects the column layout of [WriteJobSet].
type JobFormat int

const (
	// JobFormatMapping writes one row per job keyed by job name, including
	// the processing element.
	JobFormatMapping JobFormat = iota
	// JobFormatSAG writes the integral layout read by schedule-abstraction
	// graph analyses and by [ReadSAGJobSet].
	JobFormatSAG
)

var jobFormatNames = [...]string{
	JobFormatMapping: "mapping",
	JobFormatSAG:     "sag",
}

func (f JobFormat) String() string {
	if f >= 0 && int(f) < len(jobFormatNames) {
		return jobFormatNames[f]
	}
	return fmt.Sprintf("JobFormat(%d)", int(f))
}

func (f *JobFormat) UnmarshalText(text []byte) error {
	for i, name := range jobFormatNames {
		if strings.EqualFold(string(text), name) {
			*f = JobFormat(i)
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidInput, "unknown job format %q", text)
}

var (
	mappingHeader = []string{"Name", "Arrival min.", "Arrival max.", "BCET", "WCET", "Abs. deadline", "PE", "Priority"}
	sagHeader     = []string{"Task ID", "Job ID", "Arrival min", "Arrival max", "Cost min", "Cost max", "Deadline", "Priority"}
)

// A SAGJob is one row of a SAG job set. All times are integral.
type SAGJob struct {
	TaskID     int
	JobID      int
	ArrivalMin int64
	ArrivalMax int64
	CostMin    int64
	CostMax    int64
	Deadline   int64
	Priority   int
}

func (j SAGJob) record() []string {
	return []string{
		strconv.Itoa(j.TaskID),
		strconv.Itoa(j.JobID),
		strconv.FormatInt(j.ArrivalMin, 10),
		strconv.FormatInt(j.ArrivalMax, 10),
		strconv.FormatInt(j.CostMin, 10),
		strconv.FormatInt(j.CostMax, 10),
		strconv.FormatInt(j.Deadline, 10),
		strconv.Itoa(j.Priority),
	}
}

// taskID returns the number that ends the task name, as in T12, or the task
// index when the name has none.
func taskID(j priority.Job) int {
	digits := strings.TrimLeftFunc(j.Task.Name, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if id, err := strconv.Atoi(digits); err == nil {
		return id
	}
	return j.TaskIndex
}

// SAGJobs converts jobs to SAG rows. Every time must be integral.
func SAGJobs(jobs []priority.Job) ([]SAGJob, error) {
	out := make([]SAGJob, len(jobs))
	var errs error
	integral := func(j priority.Job, what string, v float64) int64 {
		if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			errs = multierr.Append(errs, errors.Wrapf(ErrInvalidInput, "job %s: %s %v is not integral", j.Name(), what, v))
		}
		return int64(v)
	}
	for i, j := range jobs {
		out[i] = SAGJob{
			TaskID:     taskID(j),
			JobID:      j.Instance,
			ArrivalMin: integral(j, "earliest arrival", j.EarliestArrival),
			ArrivalMax: integral(j, "latest arrival", j.LatestArrival),
			CostMin:    integral(j, "bcet", j.Task.BCET),
			CostMax:    integral(j, "wcet", j.Task.WCET),
			Deadline:   integral(j, "absolute deadline", j.AbsoluteDeadline),
			Priority:   j.Priority,
		}
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// WriteJobSet writes jobs as CSV in the given format.
func WriteJobSet(w io.Writer, jobs []priority.Job, format JobFormat) error {
	cw := csv.NewWriter(w)
	switch format {
	case JobFormatMapping:
		if err := cw.Write(mappingHeader); err != nil {
			return errors.WithStack(err)
		}
		for _, j := range jobs {
			err := cw.Write([]string{
				j.Name(),
				formatFloat(j.EarliestArrival),
				formatFloat(j.LatestArrival),
				formatFloat(j.Task.BCET),
				formatFloat(j.Task.WCET),
				formatFloat(j.AbsoluteDeadline),
				strconv.Itoa(j.Task.PE),
				strconv.Itoa(j.Priority),
			})
			if err != nil {
				return errors.WithStack(err)
			}
		}
	case JobFormatSAG:
		rows, err := SAGJobs(jobs)
		if err != nil {
			return err
		}
		if err := cw.Write(sagHeader); err != nil {
			return errors.WithStack(err)
		}
		for _, row := range rows {
			if err := cw.Write(row.record()); err != nil {
				return errors.WithStack(err)
			}
		}
	default:
		return errors.Wrapf(ErrInvalidInput, "unknown job format %d", int(format))
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}

// ReadSAGJobSet parses a SAG job-set CSV. Columns are located by header, so
// their order may vary.
func ReadSAGJobSet(r io.Reader) ([]SAGJob, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "missing header")
	}
	columns := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		columns[strings.TrimSpace(h)] = i
	}
	index := make([]int, len(sagHeader))
	for i, name := range sagHeader {
		c, ok := columns[name]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidInput, "missing column %q", name)
		}
		index[i] = c
	}

	jobs := make([]SAGJob, 0, len(records)-1)
	var errs error
	for line, record := range records[1:] {
		var values [8]int64
		var rowErr error
		for i, c := range index {
			s := strings.TrimSpace(record[c])
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				rowErr = multierr.Append(rowErr, errors.Wrapf(ErrInvalidInput, "%s %q is not an integer", sagHeader[i], s))
			}
			values[i] = v
		}
		if rowErr != nil {
			errs = multierr.Append(errs, errors.WithMessagef(rowErr, "row %d", line+2))
			continue
		}
		jobs = append(jobs, SAGJob{
			TaskID:     int(values[0]),
			JobID:      int(values[1]),
			ArrivalMin: values[2],
			ArrivalMax: values[3],
			CostMin:    values[4],
			CostMax:    values[5],
			Deadline:   values[6],
			Priority:   int(values[7]),
		})
	}
	if errs != nil {
		return nil, errs
	}
	return jobs, nil
}
