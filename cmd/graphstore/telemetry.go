package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// setupTelemetry wires a concrete tracer/meter provider so the library's
// package-level otel.Tracer/otel.Meter calls (internal/storage/memory)
// have somewhere to send spans and metrics. Without this, the global
// provider stays the no-op default and every span/counter call is a
// cheap no-op too — fine for library embedding, useless for a CLI meant
// to show what a store is doing. --verbose switches the exporters on;
// otherwise telemetry stays a no-op, matching the library's own default.
func setupTelemetry() func() {
	if !verbose {
		return func() {}
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("telemetry: trace exporter: "+err.Error()))
		return func() {}
	}
	metricExporter, err := stdoutmetric.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("telemetry: metric exporter: "+err.Error()))
		return func() {}
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(
		sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(5*time.Second)),
	))

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
	}
}
