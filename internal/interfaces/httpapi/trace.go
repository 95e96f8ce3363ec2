package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/film-grading/internal/platform/tracing"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("film-grading/internal/interfaces/httpapi")

// startSpan traces handler entry points under the otelhttp server span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		name = ""
	}
	return tracing.Child(ctx, apiTracer, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
