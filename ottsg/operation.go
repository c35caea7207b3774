// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package ottsg provides OpenTelemetry and zap instrumentation for task set
// generation. Each wrapper takes an operation, a function of a context
// returning a result and an error, and returns an operation of the same shape
// so that wrappers compose.
package ottsg

import (
	"context"
)

// An Operation is one instrumentable step, such as generating or
// transforming a task set.
type Operation[T any] func(ctx context.Context) (T, error)

const instrumentationName = "github.com/petenewcomb/tsg-go/ottsg"
