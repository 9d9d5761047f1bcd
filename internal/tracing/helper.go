package tracing

import (
	"context"
	"runtime"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/txsync/chainstate"

func StartTracing(ctx context.Context, spanName string, tracingEnabled bool, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	if !tracingEnabled {
		return ctx, nil
	}

	var span trace.Span
	tracer := otel.Tracer(instrumentationName)
	if tracer == nil {
		return ctx, nil
	}

	if len(attributes) > 0 {
		ctx, span = tracer.Start(ctx, spanName, trace.WithAttributes(attributes...))
		return ctx, span
	}

	ctx, span = tracer.Start(ctx, spanName)
	return ctx, span
}

func EndTracing(span trace.Span, err error) {
	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// CallerAttributes appends the file of the caller two frames up, which is the file calling a WithTracer option.
// The result is clipped so that appending span specific attributes to it never shares the backing array.
func CallerAttributes(attrs []attribute.KeyValue, attr ...attribute.KeyValue) []attribute.KeyValue {
	attrs = append(attrs, attr...)

	_, file, _, ok := runtime.Caller(2)
	if ok {
		attrs = append(attrs, attribute.String("file", file))
	}

	return slices.Clip(attrs)
}
