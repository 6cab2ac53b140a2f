// Package telemetry installs the process-wide tracing hook.
//
// Init is called once by the launcher, after configuration and before the
// application is constructed. Construction failures are recorded as error
// spans through RecordError. Every provider exports finished spans to the
// log channels; Options.Processors adds further processors.
package telemetry

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lucioric2000/openshot-qt/internal/logging"
	"github.com/Lucioric2000/openshot-qt/internal/system"
)

const (
	// DisableEnv turns tracing off when set to "off", "0" or "false".
	DisableEnv = "OPENSHOT_TELEMETRY"

	tracerName = "github.com/Lucioric2000/openshot-qt"
)

// Options configures the tracer provider.
type Options struct {
	ServiceName string
	Version     string

	// Env is consulted for DisableEnv. Defaults to the process environment.
	Env system.Environment

	// Processors are attached in addition to the log exporter.
	Processors []sdktrace.SpanProcessor
}

var (
	mu        sync.Mutex
	once      sync.Once
	provider  *sdktrace.TracerProvider
	sessionID string
)

// Init installs a tracer provider as the global OpenTelemetry provider.
// Only the first call has an effect.
func Init(opts Options) {
	once.Do(func() {
		env := opts.Env
		if env == nil {
			env = system.DefaultEnv()
		}
		if v, ok := env.LookupEnv(DisableEnv); ok && disabled(v) {
			logging.Debug("telemetry disabled", "env", DisableEnv)
			return
		}

		id := uuid.NewString()
		res := sdkresource.NewSchemaless(
			attribute.String("service.name", opts.ServiceName),
			attribute.String("service.version", opts.Version),
			attribute.String("session.id", id),
		)

		tpOpts := []sdktrace.TracerProviderOption{
			sdktrace.WithResource(res),
			sdktrace.WithSyncer(logExporter{}),
		}
		for _, p := range opts.Processors {
			tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(p))
		}
		tp := sdktrace.NewTracerProvider(tpOpts...)
		otel.SetTracerProvider(tp)

		mu.Lock()
		provider = tp
		sessionID = id
		mu.Unlock()

		logging.Debug("telemetry initialized", "session", id)
	})
}

func disabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "off", "0", "false", "no":
		return true
	}
	return false
}

// Enabled reports whether Init installed a provider.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return provider != nil
}

// SessionID returns the identifier attached to every span of this process.
func SessionID() string {
	mu.Lock()
	defer mu.Unlock()
	return sessionID
}

// Tracer returns the launcher's tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// RecordError records err on a short span named op. A nil err is ignored.
func RecordError(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	_, span := Tracer().Start(ctx, op)
	defer span.End()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Shutdown flushes and stops the provider installed by Init, if any.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	tp := provider
	mu.Unlock()
	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}
