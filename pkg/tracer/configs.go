package tracer

type Config struct {
	// ServiceName is reported as the otel service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv tags every span with the deployment environment.
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport attaches the OTLP HTTP exporter. The exporter endpoint
	// is taken from the standard OTEL_EXPORTER_OTLP_* environment
	// variables. When false, spans are created but never leave the
	// process, which keeps instrumented code paths testable without a
	// collector.
	//
	// Default: false
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
