// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/priority"
	"github.com/petenewcomb/tsg-go/tsgio"
)

type jobSetOptions struct {
	method priority.Method
	format tsgio.JobFormat
}

func (o *jobSetOptions) addFlags(fs *pflag.FlagSet) {
	fs.VarP(newTextValue(&o.method, "method"), "method", "m", "rm, dm, or edf")
	fs.VarP(newTextValue(&o.format, "format"), "format", "f", "mapping or sag")
}

// write expands ts, assigns priorities, and writes jobset-<name>.csv.
func (o *jobSetOptions) write(global *globalOptions, ts tsg.TaskSet, name string) error {
	jobs, err := priority.Assign(ts, o.method)
	if err != nil {
		return err
	}
	path := global.path("jobset-" + name + ".csv")
	err = writeFile(path, func(w io.Writer) error {
		return tsgio.WriteJobSet(w, jobs, o.format)
	})
	if err != nil {
		return err
	}
	global.logger.Info("wrote job set",
		zap.String("path", path),
		zap.Stringer("method", o.method),
		zap.Stringer("format", o.format),
		zap.Int("jobs", len(jobs)),
	)
	for _, j := range jobs {
		global.logger.Debug(j.String())
	}
	return nil
}

type priorityOptions struct {
	global *globalOptions

	taskSetFile string
	jobs        jobSetOptions
}

func newPriorityCommand(global *globalOptions) *cobra.Command {
	o := &priorityOptions{global: global}
	command := &cobra.Command{
		Use:   "priority",
		Short: "Expand a task set over its hyperperiod and assign job priorities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := readTaskSetFile(o.taskSetFile)
			if err != nil {
				return err
			}
			return o.jobs.write(o.global, ts, baseName(o.taskSetFile))
		},
	}
	command.Flags().StringVarP(&o.taskSetFile, "taskset", "t", "", "task set CSV file")
	o.jobs.addFlags(command.Flags())
	_ = command.MarkFlagRequired("taskset")
	return command
}
