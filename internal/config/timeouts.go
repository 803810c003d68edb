package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the tunable delays of a run.
// These values can be customized via environment variables.
type Timeouts struct {
	SettleDelay      time.Duration // Wait after launch before tagging new instances
	PollBackoffStep  time.Duration // Readiness poll n sleeps n*PollBackoffStep first
	ProbeTimeout     time.Duration // Connect timeout of the reachability probe
	RemoteRetryDelay time.Duration // Fixed delay between remote command retries
	RemoteMaxRetries int           // Retries after the first remote command attempt
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CEC2_SETTLE_DELAY (default: 15s)
//   - CEC2_POLL_BACKOFF_STEP (default: 5s)
//   - CEC2_PROBE_TIMEOUT (default: 5s)
//   - CEC2_REMOTE_RETRY_DELAY (default: 30s)
//   - CEC2_REMOTE_MAX_RETRIES (default: 5)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		SettleDelay:      parseDuration("CEC2_SETTLE_DELAY", 15*time.Second),
		PollBackoffStep:  parseDuration("CEC2_POLL_BACKOFF_STEP", 5*time.Second),
		ProbeTimeout:     parseDuration("CEC2_PROBE_TIMEOUT", 5*time.Second),
		RemoteRetryDelay: parseDuration("CEC2_REMOTE_RETRY_DELAY", 30*time.Second),
		RemoteMaxRetries: parseInt("CEC2_REMOTE_MAX_RETRIES", 5),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
