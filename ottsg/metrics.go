// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ottsg

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
)

// Metered records <name>.count, <name>.duration in seconds, and
// <name>.errors for op on the global meter provider.
func Metered[T any](metricName string, op Operation[T]) Operation[T] {
	return func(ctx context.Context) (T, error) {
		startTime := time.Now()
		meter := otel.GetMeterProvider().Meter(instrumentationName)

		counter, _ := meter.Int64Counter(metricName + ".count")
		duration, _ := meter.Float64Histogram(metricName + ".duration")
		counter.Add(ctx, 1)

		result, err := op(ctx)

		duration.Record(ctx, time.Since(startTime).Seconds())
		if err != nil {
			errorCounter, _ := meter.Int64Counter(metricName + ".errors")
			errorCounter.Add(ctx, 1)
		}
		return result, err
	}
}
