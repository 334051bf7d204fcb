package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartUsecaseSpan_UntracedCallerGetsNoop(t *testing.T) {
	ctx, span := startUsecaseSpan(context.Background(), "usecase.TradeService.Get")
	require.Equal(t, usecaseNoopSpan, span)
	require.False(t, span.IsRecording())
	require.Equal(t, context.Background(), ctx)
}

func TestFailSpan_SkipsClientFaults(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	for _, err := range []error{
		fmt.Errorf("%w: bad payload", ErrInvalidInput),
		fmt.Errorf("%w: serial 9", ErrNotFound),
		errors.New("journal disk full"),
	} {
		_, span := provider.Tracer("test").Start(context.Background(), "restore")
		span.SetAttributes(attribute.String("case", err.Error()))
		failSpan(span, err)
		span.End()
	}

	ended := recorder.Ended()
	require.Len(t, ended, 3)
	require.Equal(t, codes.Unset, ended[0].Status().Code)
	require.Equal(t, codes.Unset, ended[1].Status().Code)
	require.Equal(t, codes.Error, ended[2].Status().Code)
	require.Equal(t, "journal disk full", ended[2].Status().Description)
}
