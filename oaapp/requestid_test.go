package oaapp_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/oahttp"
	"github.com/advdv/oahttp/oaapp"
	"github.com/advdv/oahttp/oaapp/oaapptest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWithRequestIDGenerates(t *testing.T) {
	var seen string
	handler := oaapp.WithRequestID()(oahttp.HandlerFunc(
		func(w oahttp.ResponseWriter, r *http.Request) error {
			seen = oaapp.RequestID(r.Context())

			return nil
		}))

	rec := oaapptest.CallHandler(handler.ServeOAHTTP, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	require.Equal(t, seen, rec.Header().Get(oaapp.RequestIDHeader))
}

func TestWithRequestIDReusesInbound(t *testing.T) {
	var seen string
	handler := oaapp.WithRequestID()(oahttp.HandlerFunc(
		func(w oahttp.ResponseWriter, r *http.Request) error {
			seen = oaapp.RequestID(r.Context())

			return nil
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(oaapp.RequestIDHeader, "req-123")

	rec := oaapptest.CallHandler(handler.ServeOAHTTP, req)

	require.Equal(t, "req-123", seen)
	require.Equal(t, "req-123", rec.Header().Get(oaapp.RequestIDHeader))
}

func TestRequestIDWithoutMiddleware(t *testing.T) {
	require.Empty(t, oaapp.RequestID(t.Context()))
}
