package tracing_test

import (
	"context"
	"testing"

	"github.com/LeoR1u/ProyectoLegos/internal/config"
	"github.com/LeoR1u/ProyectoLegos/internal/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup(t *testing.T) {
	t.Run("Disabled - no exporter, propagator installed", func(t *testing.T) {
		// Act
		shutdown, err := tracing.Setup(context.Background(), config.Otel{Enabled: false}, "test")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
		assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	})

	t.Run("Enabled - provider can be shut down", func(t *testing.T) {
		cfg := config.Otel{
			Enabled:          true,
			ServiceName:      "lego-store-test",
			ExporterEndpoint: "http://127.0.0.1:4318/v1/traces",
			SamplerRatio:     0.5,
		}

		shutdown, err := tracing.Setup(context.Background(), cfg, "test")

		require.NoError(t, err)

		// nothing was exported, so shutdown does not dial the collector
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_ = shutdown(ctx)
	})
}
