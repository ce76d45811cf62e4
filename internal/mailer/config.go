package mailer

import (
	"fmt"
	"os"
	"time"
)

// Config holds mail provider configuration.
type Config struct {
	// Provider selects which mailer to use.
	// Values: "resend", "log", "mock"
	Provider string

	Resend ResendConfig
	Retry  RetryConfig

	// From is the sender address used for notifications.
	From string

	// Timeout bounds a single Send call, including retries. Default: 20s.
	Timeout time.Duration
}

// ResendConfig holds Resend-specific configuration.
type ResendConfig struct {
	APIKey  string
	BaseURL string // Optional. Override for tests or a proxy.
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "log",
		From:     "Capilize <onboarding@resend.dev>",
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ApplyEnv overrides cfg with CAPILIZE_* environment variables that are set.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("CAPILIZE_MAIL_PROVIDER"); p != "" {
		c.Provider = p
	}
	if f := os.Getenv("CAPILIZE_MAIL_FROM"); f != "" {
		c.From = f
	}
	if k := os.Getenv("CAPILIZE_RESEND_API_KEY"); k != "" {
		c.Resend.APIKey = k
	} else if k := os.Getenv("RESEND_API_KEY"); k != "" && c.Resend.APIKey == "" {
		c.Resend.APIKey = k
	}
	if u := os.Getenv("CAPILIZE_RESEND_BASE_URL"); u != "" {
		c.Resend.BaseURL = u
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	if c.From == "" {
		return fmt.Errorf("a sender address is required (CAPILIZE_MAIL_FROM)")
	}
	switch c.Provider {
	case "resend":
		if c.Resend.APIKey == "" {
			return fmt.Errorf("CAPILIZE_RESEND_API_KEY is required for the resend provider")
		}
	case "log", "mock":
		// No credentials needed.
	default:
		return fmt.Errorf("unknown mail provider: %q", c.Provider)
	}
	return nil
}
