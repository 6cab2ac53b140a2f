package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Lucioric2000/openshot-qt/internal/logging"
)

// logExporter writes finished spans to the log channels. Failed spans are
// logged as warnings, the rest at debug level.
type logExporter struct{}

func (logExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []any{
			"span", s.Name(),
			"trace_id", s.SpanContext().TraceID().String(),
			"duration", s.EndTime().Sub(s.StartTime()),
		}
		for _, kv := range s.Resource().Attributes() {
			if kv.Key == "session.id" {
				attrs = append(attrs, "session", kv.Value.AsString())
			}
		}

		if s.Status().Code == codes.Error {
			logging.Warn("span failed", append(attrs, "error", s.Status().Description)...)
			continue
		}
		logging.Debug("span finished", attrs...)
	}
	return nil
}

func (logExporter) Shutdown(context.Context) error {
	return nil
}
