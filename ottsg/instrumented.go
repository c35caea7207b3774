// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ottsg

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/petenewcomb/tsg-go"
	"github.com/petenewcomb/tsg-go/priority"
)

// Instrumented applies logging, then metrics, then tracing to op.
func Instrumented[T any](logger *zap.Logger, operationName string, op Operation[T], attrs ...attribute.KeyValue) Operation[T] {
	return Traced(operationName, Metered(operationName, Logged(logger, operationName, op)), attrs...)
}

// Generator instruments the calls of a [tsg.Generator]. Like the generator
// it wraps, it is not safe for concurrent use.
type Generator struct {
	inner  *tsg.Generator
	logger *zap.Logger
}

// NewGenerator wraps g. A nil logger uses zap.L().
func NewGenerator(g *tsg.Generator, logger *zap.Logger) *Generator {
	return &Generator{inner: g, logger: logger}
}

func configAttributes(cfg *tsg.Config) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("tsg.strategy", cfg.Strategy.String()),
		attribute.Int("tsg.task_count", cfg.TaskCount),
		attribute.Float64("tsg.target_utilization", cfg.Utilization),
	}
}

func (g *Generator) generate(ctx context.Context, cfg *tsg.Config) (tsg.TaskSet, error) {
	return Instrumented(g.logger, "tsg.generate", func(ctx context.Context) (tsg.TaskSet, error) {
		ts, err := g.inner.Generate(cfg)
		if err == nil {
			annotate(ctx, attribute.Float64("tsg.utilization", ts.Utilization()))
		}
		return ts, err
	}, configAttributes(cfg)...)(ctx)
}

// Generate calls [tsg.Generator.Generate] in a "tsg.generate" span.
func (g *Generator) Generate(ctx context.Context, cfg *tsg.Config) (tsg.TaskSet, error) {
	return g.generate(ctx, cfg)
}

// GenerateSets generates cfg.SetCount sets in a "tsg.generate-sets" span,
// each in its own child span. It stops at the first failure or when ctx is
// done.
func (g *Generator) GenerateSets(ctx context.Context, cfg *tsg.Config) ([]tsg.TaskSet, error) {
	attrs := append(configAttributes(cfg), attribute.Int("tsg.set_count", cfg.SetCount))
	return Instrumented(g.logger, "tsg.generate-sets", func(ctx context.Context) ([]tsg.TaskSet, error) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		sets := make([]tsg.TaskSet, 0, cfg.SetCount)
		for range cfg.SetCount {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ts, err := g.generate(ctx, cfg)
			if err != nil {
				return nil, err
			}
			sets = append(sets, ts)
		}
		return sets, nil
	}, attrs...)(ctx)
}

// Transform calls [tsg.Generator.Transform] in a "tsg.transform" span.
func (g *Generator) Transform(ctx context.Context, ts tsg.TaskSet, cfg tsg.TransformConfig) (tsg.TaskSet, error) {
	return Instrumented(g.logger, "tsg.transform", func(ctx context.Context) (tsg.TaskSet, error) {
		return g.inner.Transform(ts, cfg)
	},
		attribute.Int("tsg.task_count", ts.Len()),
		attribute.String("tsg.mapping", cfg.Mapping.String()),
		attribute.Float64("tsg.time_scale", cfg.TimeScale),
	)(ctx)
}

// AssignPriorities calls [priority.Assign] in a "tsg.assign-priorities"
// span annotated with the number of jobs produced.
func AssignPriorities(ctx context.Context, logger *zap.Logger, ts tsg.TaskSet, method priority.Method) ([]priority.Job, error) {
	return Instrumented(logger, "tsg.assign-priorities", func(ctx context.Context) ([]priority.Job, error) {
		jobs, err := priority.Assign(ts, method)
		if err == nil {
			annotate(ctx, attribute.Int("tsg.job_count", len(jobs)))
		}
		return jobs, err
	}, attribute.String("tsg.method", method.String()))(ctx)
}
