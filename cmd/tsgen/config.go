// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/dag"
)

// settings is everything a configuration file can set.
type settings struct {
	Generate  *tsg.Config
	Transform tsg.TransformConfig
	Shape     dag.Shape
}

// fileConfig is the TOML layout: generation keys at the top level plus
// optional [transform] and [dag] tables.
type fileConfig struct {
	tsg.Config
	Transform toml.Primitive `toml:"transform"`
	DAG       dag.Shape      `toml:"dag"`
}

// loadSettings reads path over the defaults, or returns the defaults when
// path is empty. override runs on the generation config before the
// strategy's default transform is chosen. Unknown keys are rejected.
func loadSettings(path string, override func(*tsg.Config)) (*settings, error) {
	fc := fileConfig{
		Config: *tsg.DefaultConfig.Clone(),
		DAG:    dag.DefaultShape,
	}
	var md toml.MetaData
	if path != "" {
		var err error
		md, err = toml.DecodeFile(path, &fc)
		if err != nil {
			return nil, errors.Wrapf(tsg.ErrInvalidConfiguration, "decode %s: %v", path, err)
		}
	}
	if override != nil {
		override(&fc.Config)
	}

	s := &settings{
		Generate:  &fc.Config,
		Transform: fc.Config.Strategy.DefaultTransform(),
		Shape:     fc.DAG,
	}
	s.Transform.PECount = fc.Config.PECount
	if md.IsDefined("transform") {
		if err := md.PrimitiveDecode(fc.Transform, &s.Transform); err != nil {
			return nil, errors.Wrapf(tsg.ErrInvalidConfiguration, "decode %s: transform: %v", path, err)
		}
	}
	return s, checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, key := range undecoded {
		keys[i] = key.String()
	}
	sort.Strings(keys)
	return errors.Wrapf(tsg.ErrInvalidConfiguration, "unknown configuration keys: %s", strings.Join(keys, ", "))
}
