// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package tsgio reads and writes task sets and job sets in the CSV layouts
// used by downstream schedulability tools, and exports job sets as YAML
// segment sets.
package tsgio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/markphelps/optional"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/internal/cerr"
)

// ErrInvalidInput reports a malformed header, row, or value.
const ErrInvalidInput = cerr.InvalidConfiguration

var taskHeader = []string{"Name", "Jitter", "BCET", "WCET", "Period", "Deadline", "PE"}

// Column aliases accepted by [ReadTaskSet], keyed by lower-cased header.
var taskColumns = map[string]string{
	"name":     "Name",
	"jitter":   "Jitter",
	"offset":   "Jitter",
	"phase":    "Jitter",
	"bcet":     "BCET",
	"wcet":     "WCET",
	"period":   "Period",
	"deadline": "Deadline",
	"pe":       "PE",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteTaskSet writes ts as CSV with the header
// Name,Jitter,BCET,WCET,Period,Deadline,PE.
func WriteTaskSet(w io.Writer, ts tsg.TaskSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(taskHeader); err != nil {
		return errors.WithStack(err)
	}
	for _, t := range ts {
		err := cw.Write([]string{
			t.Name,
			formatFloat(t.Jitter),
			formatFloat(t.BCET),
			formatFloat(t.WCET),
			formatFloat(t.Period),
			formatFloat(t.Deadline),
			strconv.Itoa(t.PE),
		})
		if err != nil {
			return errors.WithStack(err)
		}
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}

// ReadTaskSet parses a task-set CSV. Headers are matched case-insensitively
// and Offset or Phase is accepted for Jitter. Name, WCET, and Period are
// required; a missing BCET defaults to [tsg.DefaultBCET], a missing
// Deadline to the period, and a missing PE to 0. Every malformed row is
// reported.
func ReadTaskSet(r io.Reader) (tsg.TaskSet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "missing header")
	}

	columns := make(map[string]int)
	for i, h := range records[0] {
		name, ok := taskColumns[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := columns[name]; dup {
			return nil, errors.Wrapf(ErrInvalidInput, "duplicate column %q", name)
		}
		columns[name] = i
	}
	for _, required := range []string{"Name", "WCET", "Period"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.Wrapf(ErrInvalidInput, "missing column %q", required)
		}
	}

	ts := make(tsg.TaskSet, 0, len(records)-1)
	var errs error
	for line, record := range records[1:] {
		t, err := parseTask(columns, record)
		if err != nil {
			errs = multierr.Append(errs, errors.WithMessagef(err, "row %d", line+2))
			continue
		}
		ts = append(ts, t)
	}
	if errs != nil {
		return nil, errs
	}
	return ts, nil
}

func parseTask(columns map[string]int, record []string) (tsg.Task, error) {
	var err error
	field := func(name string) (string, bool) {
		i, ok := columns[name]
		if !ok {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}
	number := func(name string) (float64, bool) {
		s, ok := field(name)
		if !ok || s == "" {
			return 0, false
		}
		v, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidInput, "%s %q is not a number", name, s))
			return 0, false
		}
		return v, true
	}

	name, _ := field("Name")
	spec := tsg.TaskSpec{Name: name}
	spec.Jitter, _ = number("Jitter")
	if bcet, ok := number("BCET"); ok {
		spec.BCET = optional.NewFloat64(bcet)
	}
	spec.WCET, _ = number("WCET")
	spec.Period, _ = number("Period")
	spec.Deadline, _ = number("Deadline")
	if s, ok := field("PE"); ok && s != "" {
		pe, perr := strconv.Atoi(s)
		if perr != nil {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidInput, "PE %q is not an integer", s))
		}
		spec.PE = pe
	}
	if err != nil {
		return tsg.Task{}, err
	}
	t := tsg.NewTask(spec)
	if err := t.Validate(); err != nil {
		return tsg.Task{}, err
	}
	return t, nil
}
