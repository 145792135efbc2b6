package config

import "time"

// defaultsFor returns the baseline config values for the given environment.
// File and env var values layer on top of these.
func defaultsFor(environment string) map[string]interface{} {
	defaults := map[string]interface{}{
		"database_busy_timeout":        5 * time.Second,
		"database_connect_retry_count": 5,
		"database_connect_retry_delay": 2 * time.Second,
		"database_max_retries":         3,
		"geo_provider_base_url":        "http://ip-api.com",
		"payment_api_base_url":         "https://api.stripe.com",
		"probe_timeout":                5 * time.Second,
		"server_host":                  "0.0.0.0",
		"server_port":                  4114,
		"upload_dir":                   "public/audio/uploads",
	}

	switch environment {
	case "development", "":
		defaults["database_debug"] = true
		defaults["database_file_path"] = "./tmp/data.sqlite"
		defaults["jwt_secret"] = "development-secret"
		defaults["server_host"] = "127.0.0.1"
	case "test":
		defaults["database_file_path"] = ":memory:"
		defaults["jwt_secret"] = "test-secret"
		defaults["server_port"] = 0
	}

	return defaults
}
