// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tsg

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Strategy selects how utilizations, periods, and costs are drawn.
type Strategy int

const (
	StrategyWATERS Strategy = iota
	StrategyUUniFast
	StrategyEmberson
	StrategyWATERSFixedSum
)

var strategyNames = [...]string{
	StrategyWATERS:         "waters",
	StrategyUUniFast:       "uunifast",
	StrategyEmberson:       "emberson",
	StrategyWATERSFixedSum: "waters-fixedsum",
}

func (s Strategy) String() string {
	if s.valid() {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) valid() bool {
	return s >= 0 && int(s) < len(strategyNames)
}

// ParseStrategy accepts a strategy name or its numeric selector.
func ParseStrategy(text string) (Strategy, error) {
	for i, name := range strategyNames {
		if text == name {
			return Strategy(i), nil
		}
	}
	if n, err := strconv.Atoi(text); err == nil && Strategy(n).valid() {
		return Strategy(n), nil
	}
	return 0, errors.Wrapf(ErrInvalidConfiguration, "unsupported strategy %q", text)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unsupported strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DefaultTransform returns the transformation each strategy's sets are
// usually published with.
func (s Strategy) DefaultTransform() TransformConfig {
	cfg := TransformConfig{TimeScale: 100, PECount: DefaultConfig.PECount}
	switch s {
	case StrategyWATERS:
		cfg.Mapping = MappingNone
	case StrategyUUniFast, StrategyWATERSFixedSum:
		cfg.Mapping = MappingWorstFit
	case StrategyEmberson:
		cfg.TimeScale = 1
		cfg.Mapping = MappingFirstFit
	}
	return cfg
}
