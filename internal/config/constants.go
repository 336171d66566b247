package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envFailurePolicy   = "FETCH_FAILURE_POLICY"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envEnvFile         = "ENV_FILE"

	defaultPort = "4000"
	// api-football free tier allows 100 requests/day; one refresh a minute during a match window is the ceiling.
	defaultRefreshInterval = Duration(time.Minute)
	defaultProvider        = ProviderFixture
	defaultFailurePolicy   = FailurePolicyPropagate
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "live-scores-service"
	defaultEnvFile         = ".env"
)

// Provider names accepted in PROVIDER.
const (
	ProviderAPIFootball = "apifootball"
	ProviderFixture     = "fixture"
)

// Failure policies accepted in FETCH_FAILURE_POLICY.
const (
	FailurePolicyPropagate = "propagate"
	FailurePolicyFailSoft  = "failsoft"
)
