package oaapp

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	healthCheckPath() string
	logLevel() zapcore.Level
	otelExporter() string
	otelEndpoint() string
	requestTimeout() time.Duration
	documentPath() string
	docsPath() string
	apiVersion() string
}

// BaseEnvironment contains the required environment variables. Embed this in your custom
// environment struct.
type BaseEnvironment struct {
	Port            int           `env:"OA_PORT,required"`
	ServiceName     string        `env:"OA_SERVICE_NAME,required"`
	HealthCheckPath string        `env:"OA_HEALTH_CHECK_PATH" envDefault:"/healthz"`
	LogLevel        zapcore.Level `env:"OA_LOG_LEVEL" envDefault:"info"`
	OtelExporter    string        `env:"OA_OTEL_EXPORTER" envDefault:"stdout"`
	OtelEndpoint    string        `env:"OA_OTEL_ENDPOINT" envDefault:"localhost:4317"`
	RequestTimeout  time.Duration `env:"OA_REQUEST_TIMEOUT" envDefault:"30s"`

	// DocumentPath is where the generated OpenAPI document is served, an empty value disables
	// the endpoint. DocsPath serves the interactive documentation page the same way.
	DocumentPath string `env:"OA_DOCUMENT_PATH" envDefault:"/openapi.json"`
	DocsPath     string `env:"OA_DOCS_PATH"`
	APIVersion   string `env:"OA_API_VERSION" envDefault:"0.0.0"`
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) healthCheckPath() string {
	return e.HealthCheckPath
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

func (e BaseEnvironment) otelEndpoint() string {
	return e.OtelEndpoint
}

func (e BaseEnvironment) requestTimeout() time.Duration {
	return e.RequestTimeout
}

func (e BaseEnvironment) documentPath() string {
	return e.DocumentPath
}

func (e BaseEnvironment) docsPath() string {
	return e.DocsPath
}

func (e BaseEnvironment) apiVersion() string {
	return e.APIVersion
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}

		return e, nil
	}
}
