package telemetry

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/amaumene/bingebuddy"

// Init configures the global OpenTelemetry trace provider.
// When disabled, the global noop provider stays in place and a noop shutdown is returned.
// Finished spans are written to the logger at debug level.
func Init(ctx context.Context, serviceName string, enabled bool, logger *logrus.Logger) (shutdown func(context.Context) error, err error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(&logSpanProcessor{logger: logger}),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Tracer returns the application tracer from the global provider
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// logSpanProcessor logs every ended span
type logSpanProcessor struct {
	logger *logrus.Logger
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := logrus.Fields{
		"span":     s.Name(),
		"trace_id": s.SpanContext().TraceID().String(),
		"duration": s.EndTime().Sub(s.StartTime()),
	}
	for _, attr := range s.Attributes() {
		fields[string(attr.Key)] = attr.Value.Emit()
	}
	if s.Status().Description != "" {
		fields["error"] = s.Status().Description
	}
	p.logger.WithFields(fields).Debug("Span finished")
}

func (p *logSpanProcessor) Shutdown(context.Context) error { return nil }

func (p *logSpanProcessor) ForceFlush(context.Context) error { return nil }
