package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"marketstudy/internal/config"
)

func TestInitializeOTel_Disabled(t *testing.T) {
	cfg := OTelConfigFrom(config.ObservabilityConfig{
		Environment:    "test",
		TraceExporter:  "none",
		MetricExporter: "none",
		SampleRatio:    1,
	}, "test")

	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.Meter)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{TraceExporter: "jaeger"}, nil)
	assert.ErrorContains(t, err, "unsupported trace exporter")

	_, err = InitializeOTel(&OTelConfig{MetricExporter: "statsd"}, nil)
	assert.ErrorContains(t, err, "unsupported metric exporter")
}

func TestStudyMetrics(t *testing.T) {
	metrics, err := CreateStudyMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordStepMetrics(ctx, metrics, "run-1", "analyze", time.Second, nil)
		RecordStepMetrics(ctx, metrics, "run-1", "render", time.Second, errors.New("boom"))
		RecordHTTPRequest(ctx, metrics, "/api/health", "GET", 200, time.Millisecond)
		RecordStepMetrics(ctx, nil, "run-1", "analyze", time.Second, nil)
		RecordHTTPRequest(ctx, nil, "/", "GET", 200, 0)
	})
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	ctx, span := tp.Tracer("test").Start(context.Background(), "step")
	RecordError(ctx, errors.New("render failed"))
	assert.NotEmpty(t, GetTraceID(ctx))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "render failed", spans[0].Status().Description)
}
