// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ottsg

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Logged logs the start and completion of op with its duration. Failures are
// logged at Error and everything else at Debug. A nil logger uses zap.L().
func Logged[T any](logger *zap.Logger, operationName string, op Operation[T]) Operation[T] {
	return func(ctx context.Context) (T, error) {
		logger := logger
		if logger == nil {
			logger = zap.L()
		}
		logger.Debug("Starting operation",
			zap.String("operation", operationName),
			zap.String("component", "ottsg"))

		startTime := time.Now()
		result, err := op(ctx)
		duration := time.Since(startTime)

		if err != nil {
			logger.Error("Operation failed",
				zap.String("operation", operationName),
				zap.String("component", "ottsg"),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("Operation completed",
				zap.String("operation", operationName),
				zap.String("component", "ottsg"),
				zap.Duration("duration", duration))
		}
		return result, err
	}
}
