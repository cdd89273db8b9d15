package monitoring

import (
	"context"
	"testing"

	"github.com/cleitonzila/n64-checklist/config"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown := InitTracing(context.Background(), &config.Config{OTelEnabled: false})
	assert.NoError(t, shutdown(context.Background()))
	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
}

func TestInitTracingStdout(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown := InitTracing(context.Background(), &config.Config{
		OTelEnabled:     true,
		OTelServiceName: "collection-tracker-test",
		OTelSampleRatio: 0,
	})
	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, isSDK)
	assert.NoError(t, shutdown(context.Background()))
}
