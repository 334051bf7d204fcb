package httpapi

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

	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.ExchangeTrade", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldCreateHTTPAPISpan(tt.in)
			if got != tt.want {
				t.Fatalf("shouldCreateHTTPAPISpan(%q)=%v want=%v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartSpan_NeedsTracedParent(t *testing.T) {
	ctx, span := startSpan(context.Background(), "httpapi.Handler.GetTrade")
	require.Equal(t, noopSpan, span)
	require.Equal(t, context.Background(), ctx)
}

func TestAnnotateError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	tracer := provider.Tracer("test")

	cases := []struct {
		err        error
		wantStatus codes.Code
	}{
		{fmt.Errorf("%w: short payload", usecase.ErrInvalidInput), codes.Unset},
		{errors.New("connection refused"), codes.Error},
	}
	for _, tc := range cases {
		ctx, span := tracer.Start(context.Background(), "httpapi.Handler.UploadContent")
		annotateError(ctx, tc.err, classifyError(tc.err))
		span.End()
	}

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	require.Equal(t, codes.Unset, ended[0].Status().Code)
	require.Contains(t, ended[0].Attributes(), attribute.String("pkmn.error.reason", "invalidInput"))
	require.Equal(t, codes.Error, ended[1].Status().Code)
	require.Contains(t, ended[1].Attributes(), attribute.Int("http.response.status_code", 500))
	require.Len(t, ended[1].Events(), 1)
}
