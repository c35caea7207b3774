// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ottsg

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced runs op inside a span with the given name and attributes. A failed
// operation records its error on the span and marks the span as errored.
func Traced[T any](operationName string, op Operation[T], attrs ...attribute.KeyValue) Operation[T] {
	return func(ctx context.Context) (T, error) {
		tracer := otel.Tracer(instrumentationName)
		ctx, span := tracer.Start(ctx, operationName, trace.WithAttributes(attrs...))
		defer span.End()

		result, err := op(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return result, err
	}
}

// annotate adds attributes to the span carried by ctx, if any.
func annotate(ctx context.Context, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(attrs...)
}
