package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewProviders_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	for _, endpoint := range []string{"", "   "} {
		p, err := NewProviders(ctx, Config{Endpoint: endpoint, ServiceName: "quickswap-auth", ServiceVersion: "test"})
		require.NoError(t, err)
		assert.NotNil(t, p.TracerProvider)
		assert.NotNil(t, p.MeterProvider)
		assert.NotNil(t, p.LoggerProvider)
		assert.False(t, p.Exporting)
		assert.NoError(t, p.Shutdown(ctx))
	}
}

func TestNewProviders_InvalidEndpoint(t *testing.T) {
	ctx := context.Background()
	for _, endpoint := range []string{"http://", "http://[invalid"} {
		_, err := NewProviders(ctx, Config{Endpoint: endpoint, ServiceName: "quickswap-auth"})
		assert.Error(t, err, endpoint)
	}
}

func TestGRPCTarget(t *testing.T) {
	tests := []struct {
		endpoint     string
		insecure     bool
		wantTarget   string
		wantInsecure bool
	}{
		{"localhost:4317", false, "localhost:4317", true},
		{"http://collector:4317", false, "collector:4317", true},
		{"https://collector.example.com:4317", false, "collector.example.com:4317", false},
		{"https://collector.example.com:4317/v1/traces", false, "collector.example.com:4317", false},
		{"https://collector.example.com:4317", true, "collector.example.com:4317", true},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			target, insecure, err := grpcTarget(tt.endpoint, tt.insecure)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTarget, target)
			assert.Equal(t, tt.wantInsecure, insecure)
		})
	}
}

func TestNewProviders_ExportingShutdown(t *testing.T) {
	ctx := context.Background()
	// Exporters dial lazily, so construction succeeds without a collector.
	p, err := NewProviders(ctx, Config{Endpoint: "localhost:4317", ServiceName: "quickswap-auth"})
	require.NoError(t, err)
	assert.True(t, p.Exporting)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_ = p.Shutdown(cancelled)
}

func TestSetGlobal(t *testing.T) {
	ctx := context.Background()
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	p, err := NewProviders(ctx, Config{ServiceName: "quickswap-auth"})
	require.NoError(t, err)
	defer func() { _ = p.Shutdown(ctx) }()

	p.SetGlobal()
	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)
	assert.NotNil(t, otel.GetTextMapPropagator())
}
