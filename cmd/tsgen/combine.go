// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/tsgio"
)

type combineOptions struct {
	global *globalOptions

	taskSetFile string
	samePeriod  bool
	withJobs    bool
	jobs        jobSetOptions
}

func (o *combineOptions) run() error {
	ts, err := readTaskSetFile(o.taskSetFile)
	if err != nil {
		return err
	}
	combined := tsg.CombineLowestPeriod(ts)
	if o.samePeriod {
		combined = tsg.CombineSamePeriod(ts)
	}
	name := baseName(o.taskSetFile) + "-combined"
	path := o.global.path(name + ".csv")
	err = writeFile(path, func(w io.Writer) error {
		return tsgio.WriteTaskSet(w, combined)
	})
	if err != nil {
		return err
	}
	o.global.logger.Info("wrote combined task set",
		zap.String("path", path),
		zap.Int("before", ts.Len()),
		zap.Int("after", combined.Len()),
	)
	if o.withJobs {
		return o.jobs.write(o.global, combined, name)
	}
	return nil
}

func newCombineCommand(global *globalOptions) *cobra.Command {
	o := &combineOptions{global: global}
	command := &cobra.Command{
		Use:   "combine",
		Short: "Fold tasks that share a period into one task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run()
		},
	}
	fs := command.Flags()
	fs.StringVarP(&o.taskSetFile, "taskset", "t", "", "task set CSV file")
	fs.BoolVar(&o.samePeriod, "same-period", false, "fold every shared period, not only the lowest")
	fs.BoolVar(&o.withJobs, "jobs", false, "also write the combined set's job set")
	o.jobs.addFlags(fs)
	_ = command.MarkFlagRequired("taskset")
	return command
}
