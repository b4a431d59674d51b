package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// OracleMode selects how the entropy oracle is reached.
type OracleMode string

const (
	ModeBinary OracleMode = "binary"
	ModeHTTP   OracleMode = "http"
)

// Duration wraps time.Duration so config values can be written as "500ms".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string ("500ms", "2s", ...).
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// OracleConfig holds the oracle transport settings.
type OracleConfig struct {
	Mode       OracleMode `yaml:"mode"`        // "binary" | "http"
	BinaryPath string     `yaml:"binary_path"` // oracle binary (binary mode)
	BinaryArgs []string   `yaml:"binary_args"` // extra arguments (binary mode)
	HTTPURL    string     `yaml:"http_url"`    // health endpoint (http mode)
	Timeout    Duration   `yaml:"timeout"`     // per-fetch deadline
}

// SchedulerConfig holds gating scheduler settings.
type SchedulerConfig struct {
	ThrottleDelay Duration `yaml:"throttle_delay"` // backoff before a throttled run
	DefaultJob    string   `yaml:"default_job"`    // job used when none is named
}

// JobsConfig holds settings for the built-in job variants.
type JobsConfig struct {
	GatewayURL string `yaml:"gateway_url"` // base URL of the external job executor
	Source     string `yaml:"source"`      // source tag sent in gateway dispatch payloads
}

// ServerConfig holds configuration for the kborch API server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // listen address (default ":8080")
	DBPath    string `yaml:"db_path"`    // SQLite run-history path (":memory:" for testing)
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
}

// Config is the full orchestrator configuration. It is constructed once and
// passed by reference into the components that need it; there is no ambient
// global configuration.
type Config struct {
	Oracle    OracleConfig    `yaml:"oracle"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Jobs      JobsConfig      `yaml:"jobs"`
	Server    ServerConfig    `yaml:"server"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		Oracle: OracleConfig{
			Mode:       ModeBinary,
			BinaryPath: "entropy_health",
			HTTPURL:    "http://127.0.0.1:3000/health",
			Timeout:    Duration(time.Second),
		},
		Scheduler: SchedulerConfig{
			ThrottleDelay: Duration(500 * time.Millisecond),
			DefaultJob:    "dummy",
		},
		Jobs: JobsConfig{
			GatewayURL: "http://127.0.0.1:3000",
			Source:     "kborch",
		},
		Server: ServerConfig{
			Addr:      ":8080",
			LogLevel:  "info",
			LogFormat: "text",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// Unrecognized options are a configuration error, not silently ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks option values that cannot be expressed by the types alone.
func (c Config) Validate() error {
	switch c.Oracle.Mode {
	case ModeBinary:
		if c.Oracle.BinaryPath == "" {
			return errors.New("oracle.binary_path is required in binary mode")
		}
	case ModeHTTP:
		if c.Oracle.HTTPURL == "" {
			return errors.New("oracle.http_url is required in http mode")
		}
	default:
		return fmt.Errorf("unknown oracle mode %q (want %q or %q)", c.Oracle.Mode, ModeBinary, ModeHTTP)
	}
	if c.Oracle.Timeout.Std() <= 0 {
		return errors.New("oracle.timeout must be positive")
	}
	if c.Scheduler.ThrottleDelay.Std() <= 0 {
		return errors.New("scheduler.throttle_delay must be positive")
	}
	if c.Scheduler.DefaultJob == "" {
		return errors.New("scheduler.default_job must not be empty")
	}
	return nil
}
