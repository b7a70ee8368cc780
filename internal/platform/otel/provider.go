// Package otel configures OpenTelemetry tracing for site processes.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// EndpointEnv names the OTLP/HTTP collector URL.
	EndpointEnv = "NORTHLINE_OTEL_ENDPOINT"
	// EnabledEnv disables tracing when set to "false".
	EnabledEnv = "NORTHLINE_OTEL_ENABLED"
)

// Settings selects the exporter endpoint for Setup.
type Settings struct {
	Endpoint string
	Disabled bool
}

// SettingsFromEnv reads tracing settings from the process environment.
func SettingsFromEnv() Settings {
	return Settings{
		Endpoint: strings.TrimSpace(os.Getenv(EndpointEnv)),
		Disabled: strings.EqualFold(strings.TrimSpace(os.Getenv(EnabledEnv)), "false"),
	}
}

// Setup initialises OpenTelemetry tracing for the given service using
// environment settings.
//
// Tracing is opt-in: when NORTHLINE_OTEL_ENDPOINT is empty or
// NORTHLINE_OTEL_ENABLED is "false", Setup returns a no-op shutdown function
// and no global provider is registered.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	return SetupWithSettings(ctx, serviceName, SettingsFromEnv())
}

// SetupWithSettings is Setup with explicit settings.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func SetupWithSettings(ctx context.Context, serviceName string, settings Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	endpoint := strings.TrimSpace(settings.Endpoint)
	if settings.Disabled || endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
