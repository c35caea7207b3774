// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go/tsgio"
)

func newSegmentsCommand(global *globalOptions) *cobra.Command {
	var jobSetFile string
	command := &cobra.Command{
		Use:   "segments",
		Short: "Convert a SAG job set to a YAML segment set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(jobSetFile)
			if err != nil {
				return errors.WithStack(err)
			}
			defer f.Close()
			jobs, err := tsgio.ReadSAGJobSet(f)
			if err != nil {
				return errors.WithMessagef(err, "read %s", jobSetFile)
			}
			path := global.path(baseName(jobSetFile) + ".yaml")
			err = writeFile(path, func(w io.Writer) error {
				return tsgio.WriteSegmentSet(w, jobs)
			})
			if err != nil {
				return err
			}
			global.logger.Info("wrote segment set", zap.String("path", path), zap.Int("segments", len(jobs)))
			return nil
		},
	}
	command.Flags().StringVarP(&jobSetFile, "job-set", "j", "", "SAG job set CSV file")
	_ = command.MarkFlagRequired("job-set")
	return command
}
