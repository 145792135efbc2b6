package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	Environment               string        `koanf:"environment"`
	GeoProviderBaseURL        string        `koanf:"geo_provider_base_url"`
	Hostname                  string        `koanf:"-"`
	JWTSecret                 string        `koanf:"jwt_secret"`
	PaymentAPIBaseURL         string        `koanf:"payment_api_base_url"`
	PaymentAPIKey             string        `koanf:"payment_api_key"`
	ProbeTimeout              time.Duration `koanf:"probe_timeout"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
	UploadDir                 string        `koanf:"upload_dir"`
}

const (
	configFileENV  = "CONFIG_FILE"
	environmentENV = "ENVIRONMENT"
)

// requiredFields maps koanf keys to the env vars that can supply them.
var requiredFields = map[string]string{
	"database_file_path": "DATABASE_FILE_PATH",
	"jwt_secret":         "JWT_SECRET",
}

// New loads configuration from defaults, then an optional YAML config file
// (path in CONFIG_FILE, default ./config.yaml), then environment variables.
// Later sources override earlier ones.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	k := koanf.New(".")

	defaults := defaultsFor(os.Getenv(environmentENV))
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	configFilePath := os.Getenv(configFileENV)
	if configFilePath == "" {
		configFilePath = "config.yaml"
	}
	if _, err := os.Stat(configFilePath); err == nil {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file: %s", configFilePath)
		}
	}

	// Env vars map directly onto config keys, e.g. DATABASE_FILE_PATH ->
	// database_file_path. Only keys we know about are picked up.
	err = k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := knownKeys[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.Hostname = hostname
	cfg.Environment = environmentOrDefault(os.Getenv(environmentENV))

	for key, envVar := range requiredFields {
		if k.String(key) == "" {
			return nil, errors.Errorf("missing required config: set %s or %s in the config file", envVar, key)
		}
	}

	return cfg, nil
}

func environmentOrDefault(environment string) string {
	if environment == "" {
		return "development"
	}
	return environment
}

var knownKeys = map[string]struct{}{
	"database_busy_timeout":        {},
	"database_connect_retry_count": {},
	"database_connect_retry_delay": {},
	"database_debug":               {},
	"database_file_path":           {},
	"database_max_retries":         {},
	"geo_provider_base_url":        {},
	"jwt_secret":                   {},
	"payment_api_base_url":         {},
	"payment_api_key":              {},
	"probe_timeout":                {},
	"server_host":                  {},
	"server_port":                  {},
	"upload_dir":                   {},
}
