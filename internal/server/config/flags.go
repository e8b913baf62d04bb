package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      bearer token validity, minutes
//	-l int      failed login attempts tolerated per client key
//	-w int      lockout window, seconds
//	-o string   comma-separated CORS allowed origins
//	-e string   postal-code lookup endpoint
//	-m int      postal-code lookup timeout, seconds
//	-v string   log level (debug|info|warn|error)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and converted to time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-w", "-o", "-e", "-m", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.IntVar(&config.LoginAttemptLimit, "l", config.LoginAttemptLimit, "login attempt limit per client key")
	loginAttemptWindow := fs.Int("w", int(config.LoginAttemptWindow.Seconds()), "login_attempt_window (in seconds)")

	fs.StringVar(&config.CORSAllowedOrigins, "o", config.CORSAllowedOrigins, "CORS allowed origins (comma-separated)")
	fs.StringVar(&config.CEPEndpoint, "e", config.CEPEndpoint, "postal-code lookup endpoint")
	cepRequestTimeout := fs.Int("m", int(config.CEPRequestTimeout.Seconds()), "cep_request_timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
	config.LoginAttemptWindow = time.Duration(*loginAttemptWindow) * time.Second
	config.CEPRequestTimeout = time.Duration(*cepRequestTimeout) * time.Second
}
