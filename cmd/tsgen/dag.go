// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/dag"
)

type dagOptions struct {
	global *globalOptions

	taskSetFile string
	configFile  string
	name        string
	shape       dag.Shape
}

func (o *dagOptions) addFlags(fs *pflag.FlagSet) {
	d := dag.DefaultShape
	fs.StringVarP(&o.taskSetFile, "taskset", "t", "", "task set CSV file")
	fs.StringVarP(&o.configFile, "config", "c", "", "TOML configuration file with a [dag] table")
	fs.StringVar(&o.name, "name", "", "graph name (default: task set file name)")
	fs.IntVar(&o.shape.Roots, "roots", d.Roots, "tasks on the first level")
	fs.IntVar(&o.shape.Depth, "depth", d.Depth, "number of levels")
	fs.IntVar(&o.shape.Branch, "branch", d.Branch, "maximum children per task")
}

func (o *dagOptions) run(cmd *cobra.Command) error {
	fs := cmd.Flags()
	s, err := loadSettings(o.configFile, nil)
	if err != nil {
		return err
	}
	shape := s.Shape
	if fs.Changed("roots") {
		shape.Roots = o.shape.Roots
	}
	if fs.Changed("depth") {
		shape.Depth = o.shape.Depth
	}
	if fs.Changed("branch") {
		shape.Branch = o.shape.Branch
	}

	ts, err := readTaskSetFile(o.taskSetFile)
	if err != nil {
		return err
	}
	base := baseName(o.taskSetFile)
	name := o.name
	if name == "" {
		name = base
	}

	logger := o.global.logger
	gen := tsg.NewGenerator(o.global.seed, tsg.WithLogger(logger))
	b := dag.NewBuilder(gen.Sampler().Source(), dag.WithLogger(logger))
	g, err := b.Build(ts.Len(), shape)
	if err != nil {
		return err
	}
	xml, err := dag.MarshalXML(g, ts, name)
	if err != nil {
		return err
	}
	dot, err := dag.MarshalDOT(g, ts, name)
	if err != nil {
		return err
	}
	if err := writeBytes(o.global.path(base+".xml"), xml); err != nil {
		return err
	}
	if err := writeBytes(o.global.path(base+".dot"), dot); err != nil {
		return err
	}
	logger.Info("wrote task graph",
		zap.String("name", name),
		zap.Int("tasks", ts.Len()),
		zap.Int("edges", len(g.Edges)),
		zap.Int("leaves", len(g.Leaves())),
	)
	return nil
}

func newDAGCommand(global *globalOptions) *cobra.Command {
	o := &dagOptions{global: global}
	command := &cobra.Command{
		Use:   "dag",
		Short: "Arrange a task set into a random leveled task graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	o.addFlags(command.Flags())
	_ = command.MarkFlagRequired("taskset")
	return command
}
