// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"encoding"
	"fmt"

	"github.com/spf13/pflag"
)

// textValue adapts an enumeration with text unmarshaling to a pflag.Value.
type textValue[T any, PT interface {
	*T
	encoding.TextUnmarshaler
	fmt.Stringer
}] struct {
	p   PT
	typ string
}

func newTextValue[T any, PT interface {
	*T
	encoding.TextUnmarshaler
	fmt.Stringer
}](p *T, typ string) pflag.Value {
	return &textValue[T, PT]{p: PT(p), typ: typ}
}

func (v *textValue[T, PT]) String() string {
	return v.p.String()
}

func (v *textValue[T, PT]) Set(s string) error {
	return v.p.UnmarshalText([]byte(s))
}

func (v *textValue[T, PT]) Type() string {
	return v.typ
}
