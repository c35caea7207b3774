// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/tsgio"
)

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	verbose bool
	seed    uint64
	outDir  string

	logger *zap.Logger
}

func (o *globalOptions) addFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (default: derived from the clock)")
	fs.StringVarP(&o.outDir, "out-dir", "o", ".", "directory for output files")
}

func (o *globalOptions) setup(cmd *cobra.Command) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if o.verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	o.logger = logger

	if !cmd.Flags().Changed("seed") {
		o.seed = uint64(time.Now().UnixNano())
	}
	o.logger.Info("seeded", zap.Uint64("seed", o.seed))
	return errors.WithStack(os.MkdirAll(o.outDir, 0o755))
}

func (o *globalOptions) path(name string) string {
	return filepath.Join(o.outDir, name)
}

func newRootCommand() *cobra.Command {
	o := &globalOptions{}
	root := &cobra.Command{
		Use:           "tsgen",
		Short:         "Generate real-time task sets, task graphs, and job sets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
	}
	o.addFlags(root.PersistentFlags())
	root.AddCommand(
		newGenerateCommand(o),
		newDAGCommand(o),
		newPriorityCommand(o),
		newCombineCommand(o),
		newSegmentsCommand(o),
	)
	return root
}

// baseName strips the directory and extension from path.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeFile creates path and hands a buffered writer to write.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	return errors.WithStack(w.Flush())
}

func writeBytes(path string, data []byte) error {
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return errors.WithStack(err)
	})
}

func readTaskSetFile(path string) (tsg.TaskSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	ts, err := tsgio.ReadTaskSet(f)
	return ts, errors.WithMessagef(err, "read %s", path)
}
