package config

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TASKMIND_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"TASKMIND_SERVICE_NAME" default:"taskmind"`
}
