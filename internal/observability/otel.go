package observability

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/modulehub/modulehub-backend/internal/logger"
	"github.com/modulehub/modulehub-backend/internal/utils"
)

var (
	otelOnce     sync.Once
	otelShutdown func(context.Context) error
)

// InitOTel installs a tracer provider when OTEL_ENABLED is set. The exporter
// is otlp-http against OTEL_EXPORTER_OTLP_ENDPOINT, or stdout when no
// endpoint is configured. Returns the shutdown hook (nil when disabled).
func InitOTel(ctx context.Context, log *logger.Logger) func(context.Context) error {
	otelOnce.Do(func() {
		enabled := strings.EqualFold(utils.GetEnv("OTEL_ENABLED", "", log), "true")
		if !enabled {
			return
		}
		serviceName := utils.GetEnv("OTEL_SERVICE_NAME", "modulehub-backend", log)

		res, err := resource.New(ctx, resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		))
		if err != nil {
			log.Warn("otel resource init failed (continuing)", "error", err)
		}

		var exporter sdktrace.SpanExporter
		endpoint := utils.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log)
		if endpoint != "" {
			exporter, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		} else {
			exporter, err = stdouttrace.New()
		}
		if err != nil {
			log.Warn("otel exporter init failed, tracing disabled", "error", err)
			return
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		otelShutdown = tp.Shutdown
		log.Info("otel tracing initialized", "service", serviceName, "endpoint", endpoint)
	})
	return otelShutdown
}
