// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/tsgio"
)

type generateOptions struct {
	global *globalOptions

	configFile  string
	strategy    tsg.Strategy
	taskCount   int
	setCount    int
	utilization float64
	peCount     int
	round       bool
	raw         bool
	mapping     tsg.Mapping
	timeScale   float64
	jitter      bool
}

func (o *generateOptions) addFlags(fs *pflag.FlagSet) {
	d := &tsg.DefaultConfig
	o.strategy = d.Strategy
	fs.StringVarP(&o.configFile, "config", "c", "", "TOML configuration file")
	fs.VarP(newTextValue(&o.strategy, "strategy"), "strategy", "s", "waters, uunifast, emberson, or waters-fixedsum")
	fs.IntVarP(&o.taskCount, "tasks", "n", d.TaskCount, "tasks per set")
	fs.IntVar(&o.setCount, "sets", d.SetCount, "number of sets")
	fs.Float64VarP(&o.utilization, "utilization", "u", d.Utilization, "target total utilization (0.5 = 50%)")
	fs.IntVar(&o.peCount, "pe", d.PECount, "processing elements")
	fs.BoolVar(&o.round, "round", d.Round, "round uunifast periods and emberson execution times")
	fs.BoolVar(&o.raw, "raw", false, "write sets without scaling, renaming, or mapping")
	fs.Var(newTextValue(&o.mapping, "mapping"), "mapping", "none, worst-fit, or first-fit (default: per strategy)")
	fs.Float64Var(&o.timeScale, "time-scale", 0, "time scale factor (default: per strategy)")
	fs.BoolVar(&o.jitter, "jitter", false, "draw a release jitter per task")
}

func (o *generateOptions) run(cmd *cobra.Command) error {
	fs := cmd.Flags()
	s, err := loadSettings(o.configFile, func(c *tsg.Config) {
		if fs.Changed("strategy") {
			c.Strategy = o.strategy
		}
		if fs.Changed("tasks") {
			c.TaskCount = o.taskCount
		}
		if fs.Changed("sets") {
			c.SetCount = o.setCount
		}
		if fs.Changed("utilization") {
			c.Utilization = o.utilization
		}
		if fs.Changed("pe") {
			c.PECount = o.peCount
		}
		if fs.Changed("round") {
			c.Round = o.round
		}
	})
	if err != nil {
		return err
	}
	if fs.Changed("mapping") {
		s.Transform.Mapping = o.mapping
	}
	if fs.Changed("time-scale") {
		s.Transform.TimeScale = o.timeScale
	}
	if fs.Changed("jitter") {
		s.Transform.Jitter = o.jitter
	}

	logger := o.global.logger
	g := tsg.NewGenerator(o.global.seed, tsg.WithLogger(logger))
	sets, err := g.GenerateSets(s.Generate)
	if err != nil {
		return err
	}
	for i, ts := range sets {
		if !o.raw {
			if ts, err = g.Transform(ts, s.Transform); err != nil {
				return err
			}
		}
		path := o.global.path(fmt.Sprintf("out-%d.csv", i))
		err = writeFile(path, func(w io.Writer) error {
			return tsgio.WriteTaskSet(w, ts)
		})
		if err != nil {
			return err
		}
		logger.Info("wrote task set",
			zap.String("path", path),
			zap.Int("tasks", ts.Len()),
			zap.Float64("utilization", ts.Utilization()),
		)
		logger.Debug(fmt.Sprintf("%#v", ts))
	}
	return nil
}

func newGenerateCommand(global *globalOptions) *cobra.Command {
	o := &generateOptions{global: global}
	command := &cobra.Command{
		Use:   "generate",
		Short: "Generate task sets and write them as out-<n>.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd)
		},
	}
	o.addFlags(command.Flags())
	return command
}
