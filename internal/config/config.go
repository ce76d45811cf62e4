// Package config loads Capilize settings from an optional YAML file and
// CAPILIZE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/capilize/capilize/internal/mailer"
)

// EnvConfigPath names the variable that points at a config file.
const EnvConfigPath = "CAPILIZE_CONFIG"

const defaultConfigYAML = `# capilize configuration
server:
  host: 127.0.0.1
  port: 8787

mail:
  provider: log          # resend, log or mock
  from: "Capilize <onboarding@resend.dev>"
  to:
    - vendascapilize@gmail.com
  # resend_api_key: re_...

funnel:
  # Empty sends mail from this process. Point it at "capilize serve",
  # e.g. http://127.0.0.1:8787/api/send-diagnosis, to post there instead.
  dispatch_url: ""
  analysis_delay: 3s

log:
  level: info
  format: console
`

// ServerConfig configures the dispatch HTTP service.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes,omitempty"`
}

// MailConfig configures outbound notification mail.
type MailConfig struct {
	Provider      string        `yaml:"provider"`
	From          string        `yaml:"from"`
	To            []string      `yaml:"to"`
	ResendAPIKey  string        `yaml:"resend_api_key,omitempty"`
	ResendBaseURL string        `yaml:"resend_base_url,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	MaxAttempts   int           `yaml:"max_attempts,omitempty"`
}

// FunnelConfig configures the visitor-facing funnel.
type FunnelConfig struct {
	// DispatchURL is where the terminal front end posts finished diagnoses.
	// Empty means notify in-process through the configured mailer.
	DispatchURL   string        `yaml:"dispatch_url"`
	AnalysisDelay time.Duration `yaml:"analysis_delay"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
	File   string `yaml:"file,omitempty"`
}

// Config is the root of config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Mail   MailConfig   `yaml:"mail"`
	Funnel FunnelConfig `yaml:"funnel"`
	Log    LogConfig    `yaml:"log"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic(fmt.Sprintf("config: default config is invalid: %v", err))
	}
	return &cfg
}

// DefaultYAML returns the commented default config file.
func DefaultYAML() string {
	return defaultConfigYAML
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "capilize", "config.yaml"), nil
}

// Load reads configuration. An explicit path (or CAPILIZE_CONFIG) must
// exist; otherwise the per-user file is read when present. Environment
// overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}

	switch {
	case explicit != "":
		if err := cfg.readFile(explicit); err != nil {
			return nil, err
		}
	default:
		if p, err := DefaultPath(); err == nil {
			if err := cfg.readFile(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.Path = path
	return nil
}

func (c *Config) applyEnv() error {
	if v := env("CAPILIZE_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := env("CAPILIZE_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CAPILIZE_SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := env("CAPILIZE_MAIL_TO"); v != "" {
		c.Mail.To = splitList(v)
	}
	if v := env("CAPILIZE_DISPATCH_URL"); v != "" {
		c.Funnel.DispatchURL = v
	}
	if v := env("CAPILIZE_ANALYSIS_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CAPILIZE_ANALYSIS_DELAY: %w", err)
		}
		c.Funnel.AnalysisDelay = d
	}
	if v := env("CAPILIZE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := env("CAPILIZE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c *Config) normalize() {
	c.Mail.To = splitList(strings.Join(c.Mail.To, ","))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// MailerConfig derives the mailer settings. Mail variables understood by
// the mailer package itself (provider, sender, Resend key) still win.
func (c *Config) MailerConfig() mailer.Config {
	mc := mailer.DefaultConfig()
	if c.Mail.Provider != "" {
		mc.Provider = c.Mail.Provider
	}
	if c.Mail.From != "" {
		mc.From = c.Mail.From
	}
	if c.Mail.ResendAPIKey != "" {
		mc.Resend.APIKey = c.Mail.ResendAPIKey
	}
	if c.Mail.ResendBaseURL != "" {
		mc.Resend.BaseURL = c.Mail.ResendBaseURL
	}
	if c.Mail.Timeout > 0 {
		mc.Timeout = c.Mail.Timeout
	}
	if c.Mail.MaxAttempts > 0 {
		mc.Retry.MaxAttempts = c.Mail.MaxAttempts
	}
	mc.ApplyEnv()
	return mc
}

// WriteDefault writes the commented default config to path unless a file
// already exists there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
