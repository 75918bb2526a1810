package oaapp

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNewHTTPTransport(t *testing.T) {
	rt := NewHTTPTransport(noop.NewTracerProvider(), NewPropagator())
	require.IsType(t, &otelhttp.Transport{}, rt)
}

func TestNewHTTPClient(t *testing.T) {
	rt := NewHTTPTransport(noop.NewTracerProvider(), NewPropagator())
	client := NewHTTPClient(rt)
	require.Same(t, rt, client.Transport)
}

func TestNewRequestBuilder(t *testing.T) {
	require.NotNil(t, newRequestBuilder(http.DefaultTransport))
}
