package config

import "time"

const (
	envAPIFBaseURL  = "APIFOOTBALL_BASE_URL"
	envAPIFKey      = "APIFOOTBALL_API_KEY"
	envAPIFHost     = "APIFOOTBALL_API_HOST"
	envAPIFTimeout  = "APIFOOTBALL_TIMEOUT"
	envAPIFTimezone = "APIFOOTBALL_TIMEZONE"
	envAPIFRate     = "APIFOOTBALL_RATE_PER_MINUTE"

	defaultAPIFBaseURL  = "https://api-football-v1.p.rapidapi.com/v3"
	defaultAPIFHost     = "api-football-v1.p.rapidapi.com"
	defaultAPIFTimeout  = 30 * time.Second
	defaultAPIFTimezone = "UTC"
	defaultAPIFRate     = 10
)

// APIFootballConfig controls how we talk to api-football over RapidAPI.
type APIFootballConfig struct {
	BaseURL       string        `validate:"required,url"`
	APIKey        string        `validate:"required_if=Selected true"`
	APIHost       string        `validate:"required"`
	Timeout       time.Duration `validate:"gt=0"`
	Timezone      string        `validate:"required,timezone"`
	RatePerMinute int           `validate:"gte=1"`

	// Selected is true when PROVIDER points at api-football; the key is only required then.
	Selected bool
}

func loadAPIFootball(provider string) APIFootballConfig {
	return APIFootballConfig{
		BaseURL:       envOrDefault(envAPIFBaseURL, defaultAPIFBaseURL),
		APIKey:        envOrDefault(envAPIFKey, ""),
		APIHost:       envOrDefault(envAPIFHost, defaultAPIFHost),
		Timeout:       durationEnvOrDefault(envAPIFTimeout, defaultAPIFTimeout),
		Timezone:      envOrDefault(envAPIFTimezone, defaultAPIFTimezone),
		RatePerMinute: intEnvOrDefault(envAPIFRate, defaultAPIFRate),
		Selected:      provider == ProviderAPIFootball,
	}
}
