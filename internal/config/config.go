// Package config builds the CLI configuration once at process start.
// Nothing else in the tree reads the environment; components receive an
// explicit Config instead of reaching for ambient globals.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"helpmetest/internal/helpmetest"
)

// Defaults for values the environment may override.
const (
	DefaultAPIURL     = "https://helpmetest.com"
	DefaultDataPrefix = "HELPMETEST_DATA_"
	DefaultBuffer     = 1.2
)

// Config is the effective configuration for one invocation, merged from
// environment variables, flags, and an optional probes file.
type Config struct {
	// Check identity and probe inputs.
	Name         string
	GraceLiteral string
	TimerFile    string
	ProbesFile   string
	Probes       []string

	// Collector access.
	APIURL   string
	APIToken string

	// Behavior toggles.
	SkipReport  bool
	DryRun      bool
	SkipMetrics bool
	Verbose     bool
	JSONOutput  bool

	// Grace derivation and metadata.
	Buffer      float64
	Environment string
	DataPrefix  string
	LogFile     string
}

// FromEnv reads the HELPMETEST_* environment. Flag values are layered on
// top by the caller.
func FromEnv() Config {
	apiURL := os.Getenv("HELPMETEST_API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	prefix := os.Getenv("HELPMETEST_DATA_PREFIX")
	if prefix == "" {
		prefix = DefaultDataPrefix
	}

	env := os.Getenv("HELPMETEST_ENVIRONMENT")
	if env == "" {
		env = "production"
	}

	return Config{
		APIURL:      strings.TrimSuffix(apiURL, "/"),
		APIToken:    os.Getenv("HELPMETEST_API_TOKEN"),
		SkipReport:  envBool("HELPMETEST_SKIP_REPORT"),
		DryRun:      envBool("HELPMETEST_DRY_RUN"),
		Verbose:     envBool("HELPMETEST_DEBUG"),
		Buffer:      DefaultBuffer,
		Environment: env,
		DataPrefix:  prefix,
		LogFile:     os.Getenv("HELPMETEST_LOG_FILE"),
	}
}

// Validate reports every usage error at once rather than one per run.
func (c *Config) Validate() error {
	var errs error
	if !helpmetest.IsValidCheckName(c.Name) {
		errs = multierr.Append(errs, fmt.Errorf("invalid check name %q: only alphanumeric, underscore and hyphen allowed", c.Name))
	}
	if c.GraceLiteral != "" && c.TimerFile != "" {
		errs = multierr.Append(errs, errors.New("grace period and timer file are mutually exclusive"))
	}
	if c.Buffer <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("buffer multiplier must be positive, got %v", c.Buffer))
	}
	if c.APIURL == "" {
		errs = multierr.Append(errs, errors.New("API URL must not be empty"))
	}
	return errs
}

// SkipReason returns why reporting is disabled, or "" when the heartbeat
// should be sent. A missing token skips reporting rather than failing the
// run; reachability of the backend never decides the exit code, and neither
// does its configuration.
func (c *Config) SkipReason() string {
	switch {
	case c.DryRun:
		return "dry run"
	case c.SkipReport:
		return "reporting disabled"
	case c.APIToken == "":
		return "HELPMETEST_API_TOKEN is not set"
	default:
		return ""
	}
}

// CustomData collects environment variables under the operator-chosen
// prefix into the heartbeat's free-form payload. Keys are lower-cased with
// the prefix stripped: HELPMETEST_DATA_REGION=eu becomes {"region": "eu"}.
func (c *Config) CustomData() map[string]string {
	data := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, c.DataPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, c.DataPrefix))
		if name != "" {
			data[name] = value
		}
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
