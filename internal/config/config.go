package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dshills/apidelta/internal/checks"
	"github.com/dshills/apidelta/internal/output"
)

// DotEnvFile is loaded into the environment by Load when it exists.
const DotEnvFile = ".env"

// Config represents the apidelta configuration.
type Config struct {
	// Severity, when set, replaces the minimum rule-check severity carried
	// by the results document.
	Severity    string `json:"severity,omitempty"`
	Verbose     bool   `json:"verbose"`
	PostComment bool   `json:"postComment"`
	Format      string `json:"format"`
	// SummaryFile receives the HTML job summary. Usually GITHUB_STEP_SUMMARY.
	SummaryFile   string       `json:"summaryFile,omitempty"`
	RedactSecrets bool         `json:"redactSecrets"`
	GitHub        GitHubConfig `json:"github"`
}

// GitHubConfig controls the pull-request comment client.
type GitHubConfig struct {
	APIURL         string `json:"apiURL"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Verbose:       false,
		PostComment:   true,
		Format:        "text",
		RedactSecrets: true,
		GitHub: GitHubConfig{
			APIURL:         "https://api.github.com",
			TimeoutSeconds: 30,
		},
	}
}

// MinSeverity parses the configured severity. ok is false when none is set.
func (c Config) MinSeverity() (sev checks.Severity, ok bool, err error) {
	if c.Severity == "" {
		return 0, false, nil
	}
	sev, err = checks.ParseSeverity(c.Severity)
	if err != nil {
		return 0, false, err
	}
	return sev, true, nil
}

// Timeout returns the GitHub request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.GitHub.TimeoutSeconds) * time.Second
}

// Validate checks values that can only be verified once all sources are merged.
func (c Config) Validate() error {
	if _, _, err := c.MinSeverity(); err != nil {
		return err
	}
	if !slices.Contains(output.Formats, c.Format) {
		return fmt.Errorf("unsupported format %q: want one of %v", c.Format, output.Formats)
	}
	if c.GitHub.TimeoutSeconds <= 0 {
		return fmt.Errorf("github.timeoutSeconds must be positive, got %d", c.GitHub.TimeoutSeconds)
	}
	return nil
}

// ConfigDir returns the platform-appropriate config directory for apidelta.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "apidelta"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "apidelta"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "apidelta"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "apidelta"), nil
	default:
		return filepath.Join(home, ".config", "apidelta"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile decodes the config file over base, so keys the file omits keep
// base's values. A missing file returns base unchanged.
func LoadFile(base Config) (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only flags the user set should be present).
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile(Default())
	if err != nil {
		return Config{}, err
	}
	if err := loadDotEnv(DotEnvFile); err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv adds the variables of path to the environment without replacing
// ones already set.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// envKeys maps environment variables to config keys.
var envKeys = []struct {
	env string
	key string
}{
	{"APIDELTA_SEVERITY", "severity"},
	{"APIDELTA_VERBOSE", "verbose"},
	{"APIDELTA_POST_COMMENT", "postComment"},
	{"APIDELTA_FORMAT", "format"},
	{"APIDELTA_REDACT_SECRETS", "redactSecrets"},
	{"GITHUB_STEP_SUMMARY", "summaryFile"},
	{"GITHUB_API_URL", "github.apiURL"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for _, key := range Keys {
		v, ok := overrides[key]
		if !ok || v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("--%s: %w", key, err)
		}
	}
	return nil
}

// Keys lists the settable config keys in display order.
var Keys = []string{
	"severity",
	"verbose",
	"postComment",
	"format",
	"summaryFile",
	"redactSecrets",
	"github.apiURL",
	"github.timeoutSeconds",
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "severity":
		if _, err := checks.ParseSeverity(value); err != nil {
			return err
		}
		cfg.Severity = value
	case "verbose":
		return setBool(&cfg.Verbose, key, value)
	case "postComment":
		return setBool(&cfg.PostComment, key, value)
	case "format":
		cfg.Format = value
	case "summaryFile":
		cfg.SummaryFile = value
	case "redactSecrets":
		return setBool(&cfg.RedactSecrets, key, value)
	case "github.apiURL":
		cfg.GitHub.APIURL = value
	case "github.timeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("github.timeoutSeconds must be an integer: %w", err)
		}
		cfg.GitHub.TimeoutSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}
