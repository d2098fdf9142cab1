package core

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"
)

const (
	DefaultBaseURL         = "https://api.fonnte.com"
	DefaultTimeout         = 30 * time.Second
	DefaultSecretHeader    = "x-webhook-secret"
	DefaultMaxBodyBytes    = int64(1 << 20)
	DefaultShutdownTimeout = 5 * time.Second
)

// ClientConfig configures one outbound client. It is resolved once at
// construction and never mutated afterwards.
type ClientConfig struct {
	APIKey   string        `koanf:"api_key" mapstructure:"api_key"`
	BaseURL  string        `koanf:"base_url" mapstructure:"base_url"`
	DeviceID string        `koanf:"device_id" mapstructure:"device_id"`
	Timeout  time.Duration `koanf:"timeout" mapstructure:"timeout"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

func (c ClientConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ConfigError("api_key", "core: api_key is required")
	}
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return ConfigError("base_url", "core: base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ConfigError("base_url", fmt.Sprintf("core: base_url %q is not an absolute url", base))
	}
	if c.Timeout < 0 {
		return ConfigError("timeout", "core: timeout must not be negative")
	}
	return nil
}

// Endpoint joins the base url and an API path without doubling slashes.
func (c ClientConfig) Endpoint(path string) string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/") + "/" + strings.TrimLeft(path, "/")
}

// WebhookConfig configures one inbound receiver. Port 0 binds an ephemeral
// port chosen by the operating system.
type WebhookConfig struct {
	Host            string        `koanf:"host" mapstructure:"host"`
	Port            int           `koanf:"port" mapstructure:"port"`
	Path            string        `koanf:"path" mapstructure:"path"`
	Secret          string        `koanf:"secret" mapstructure:"secret"`
	SecretHeader    string        `koanf:"secret_header" mapstructure:"secret_header"`
	WaitForHandlers bool          `koanf:"wait_for_handlers" mapstructure:"wait_for_handlers"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" mapstructure:"max_body_bytes"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

func DefaultWebhookConfig() WebhookConfig {
	return WebhookConfig{
		SecretHeader:    DefaultSecretHeader,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

func (c WebhookConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return ConfigError("port", fmt.Sprintf("core: port %d is out of range", c.Port))
	}
	if err := validateRoutePath(c.Path); err != nil {
		return err
	}
	if strings.TrimSpace(c.Secret) != "" && strings.TrimSpace(c.SecretHeader) == "" {
		return ConfigError("secret_header", "core: secret_header is required when secret is set")
	}
	if c.MaxBodyBytes < 0 {
		return ConfigError("max_body_bytes", "core: max_body_bytes must not be negative")
	}
	return nil
}

// validateRoutePath accepts only clean literal paths. The webhook route is
// matched exactly, so wildcard syntax, escapes and trailing slashes are
// rejected.
func validateRoutePath(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ConfigError("path", "core: path is required")
	}
	if !strings.HasPrefix(raw, "/") {
		return ConfigError("path", fmt.Sprintf("core: path %q must start with /", raw))
	}
	if strings.ContainsFunc(raw, unicode.IsSpace) || strings.ContainsAny(raw, "{}%?#") {
		return ConfigError("path", fmt.Sprintf("core: path %q must be a literal path without spaces, wildcards or escapes", raw))
	}
	if path.Clean(raw) != raw {
		return ConfigError("path", fmt.Sprintf("core: path %q must be clean with no trailing slash", raw))
	}
	if raw == HealthPath {
		return ConfigError("path", fmt.Sprintf("core: path %q is reserved for health checks", raw))
	}
	return nil
}

// HealthPath is the fixed liveness route served next to the webhook route.
const HealthPath = "/health"
