package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string   `validate:"required,numeric"`
	RefreshInterval Duration `validate:"gt=0"`
	Provider        string   `validate:"oneof=apifootball fixture"`
	FailurePolicy   string   `validate:"oneof=propagate failsoft"`
	LogLevel        string   `validate:"oneof=debug info warn warning error"`
	LogFormat       string   `validate:"oneof=text json"`
	APIFootball     APIFootballConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// Values already present in the environment win over the .env file.
func Load() (Config, error) {
	if err := loadEnvFile(envOrDefault(envEnvFile, defaultEnvFile)); err != nil {
		return Config{}, err
	}

	provider := strings.ToLower(envOrDefault(envProvider, defaultProvider))
	cfg := Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Provider:        provider,
		FailurePolicy:   strings.ToLower(envOrDefault(envFailurePolicy, defaultFailurePolicy)),
		LogLevel:        strings.ToLower(envOrDefault(envLogLevel, defaultLogLevel)),
		LogFormat:       strings.ToLower(envOrDefault(envLogFormat, defaultLogFormat)),
		APIFootball:     loadAPIFootball(provider),
		Metrics:         loadMetrics(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation in one error.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
