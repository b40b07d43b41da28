package portal

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/viant/signoff/model"
)

// Default portal settings.
const (
	DefaultBaseURL     = "https://portal.simpleko.se"
	DefaultTimeout     = 30 * time.Second
	DefaultRefererPath = "/kundportal/payouts"
	DefaultUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/113.0.0.0 Safari/537.36"
)

// Config holds the portal connection settings.
type Config struct {
	BaseURL       string        `json:"baseURL" yaml:"baseURL"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	SessionCookie string        `json:"sessionCookie,omitempty" yaml:"sessionCookie,omitempty"`
	UserAgent     string        `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	RefererPath   string        `json:"refererPath,omitempty" yaml:"refererPath,omitempty"`
}

// DefaultConfig returns the settings of the production portal.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		SessionCookie: model.DefaultSessionCookie,
		UserAgent:     DefaultUserAgent,
		RefererPath:   DefaultRefererPath,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("portal.baseURL was empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("portal.baseURL %q is invalid: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("portal.baseURL %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("portal.timeout must be >= 0")
	}
	return nil
}

func (c *Config) baseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Config) sessionCookie() string {
	if c.SessionCookie == "" {
		return model.DefaultSessionCookie
	}
	return c.SessionCookie
}
