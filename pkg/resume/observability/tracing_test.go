package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTracingTest installs a recording tracer provider.
func setupTracingTest(t *testing.T) (*tracetest.SpanRecorder, func()) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)

	// The package tracer is bound at init, so re-bind it against the
	// test provider and again after restoring the original.
	tracer = otel.Tracer("resume")

	cleanup := func() {
		otel.SetTracerProvider(original)
		tracer = otel.Tracer("resume")
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}
	return recorder, cleanup
}

func TestSpanManager_SaveSpan(t *testing.T) {
	recorder, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()
	ctx, span := sm.StartSaveSpan(context.Background(), "mypkg.fit")
	require.NotNil(t, ctx)

	sm.AddSpanEvent(ctx, "encoded")
	sm.EndSpanWithError(span, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "resume.save", spans[0].Name())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "encoded", spans[0].Events()[0].Name)
}

func TestSpanManager_StartSpans(t *testing.T) {
	recorder, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	_, save := sm.StartSaveSpan(context.Background(), "mypkg.fit")
	sm.EndSpanWithError(save, nil)

	_, restore := sm.StartRestoreSpan(context.Background(), "mypkg.fit")
	sm.EndSpanWithError(restore, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	names := []string{spans[0].Name(), spans[1].Name()}
	assert.Contains(t, names, "resume.save")
	assert.Contains(t, names, "resume.restore")

	for _, s := range spans {
		assert.Equal(t, trace.SpanKindInternal, s.SpanKind())
	}
}

func TestEndSpanWithError_NilSpan(t *testing.T) {
	sm := NewSpanManager()
	assert.NotPanics(t, func() {
		sm.EndSpanWithError(nil, errors.New("x"))
	})
}
