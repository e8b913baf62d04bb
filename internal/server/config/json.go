package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/listkeeper/internal/flagx"
	"github.com/dmitrijs2005/listkeeper/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "300s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	LoginAttemptLimit     int            `json:"login_attempt_limit"`
	LoginAttemptWindow    timex.Duration `json:"login_attempt_window"`
	CORSAllowedOrigins    string         `json:"cors_allowed_origins"`
	CEPEndpoint           string         `json:"cep_endpoint"`
	CEPRequestTimeout     timex.Duration `json:"cep_request_timeout"`
	LogLevel              string         `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.LoginAttemptLimit = c.LoginAttemptLimit
	config.LoginAttemptWindow = c.LoginAttemptWindow.Duration
	config.CORSAllowedOrigins = c.CORSAllowedOrigins
	config.CEPEndpoint = c.CEPEndpoint
	config.CEPRequestTimeout = c.CEPRequestTimeout.Duration
	config.LogLevel = c.LogLevel
}
