package support

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"

	"github.com/weegigs/link-rest-go/lr"
)

const defaultJaegerEndpoint = "http://localhost:14268/api/traces"

func ConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func HoneycombExporter(ctx context.Context, team string, dataset string) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint("api.honeycomb.io:443"),
		otlptracegrpc.WithHeaders(map[string]string{
			"x-honeycomb-team":    team,
			"x-honeycomb-dataset": dataset,
		}),
		otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func JaegerExporter(endpoint string) (*jaeger.Exporter, error) {
	if endpoint == "" {
		endpoint = defaultJaegerEndpoint
	}
	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
}

// NewExporter creates the span exporter named by the configuration. An empty
// exporter name yields nil.
func (c TelemetryConfig) NewExporter(ctx context.Context) (trace.SpanExporter, error) {
	switch c.Exporter {
	case "":
		return nil, nil
	case "console":
		return ConsoleExporter()
	case "honeycomb":
		return HoneycombExporter(ctx, c.Team, c.Dataset)
	case "jaeger":
		return JaegerExporter(c.Endpoint)
	default:
		return nil, lr.InvalidConfiguration("unknown telemetry exporter " + c.Exporter)
	}
}

// TracerProvider installs a global tracer provider batching to the configured
// exporter. Callers shut the provider down on exit.
func (c TelemetryConfig) TracerProvider(ctx context.Context) (*trace.TracerProvider, error) {
	exporter, err := c.NewExporter(ctx)
	if err != nil {
		return nil, err
	}

	options := []trace.TracerProviderOption{}
	if exporter != nil {
		options = append(options, trace.WithBatcher(exporter))
	}

	provider := trace.NewTracerProvider(options...)
	otel.SetTracerProvider(provider)

	return provider, nil
}
