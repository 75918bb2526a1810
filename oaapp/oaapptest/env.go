package oaapptest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for overriding [oaapp.BaseEnvironment] env vars via t.Setenv.
// Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets the [oaapp.BaseEnvironment] env vars to sensible test defaults. Port is
// required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - OA_SERVICE_NAME: "test"
//   - OA_OTEL_EXPORTER: "none"
//   - OA_REQUEST_TIMEOUT: "30s"
//
// Use the returned [Env] to override individual values:
//
//	oaapptest.SetBaseEnv(t, 18085).ServiceName("itemsvc").RequestTimeout("5s")
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("OA_PORT", strconv.Itoa(port))
	t.Setenv("OA_SERVICE_NAME", "test")
	t.Setenv("OA_OTEL_EXPORTER", "none")
	t.Setenv("OA_REQUEST_TIMEOUT", "30s")

	return &Env{t: t}
}

// ServiceName overrides OA_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("OA_SERVICE_NAME", name)
	return e
}

// HealthCheckPath overrides OA_HEALTH_CHECK_PATH.
func (e *Env) HealthCheckPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("OA_HEALTH_CHECK_PATH", path)
	return e
}

// OtelExporter overrides OA_OTEL_EXPORTER.
func (e *Env) OtelExporter(exporter string) *Env {
	e.t.Helper()
	e.t.Setenv("OA_OTEL_EXPORTER", exporter)
	return e
}

// RequestTimeout overrides OA_REQUEST_TIMEOUT.
func (e *Env) RequestTimeout(d string) *Env {
	e.t.Helper()
	e.t.Setenv("OA_REQUEST_TIMEOUT", d)
	return e
}

// DocumentPath overrides OA_DOCUMENT_PATH.
func (e *Env) DocumentPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("OA_DOCUMENT_PATH", path)
	return e
}
