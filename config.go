package signoff

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/signoff/internal/env"
	"github.com/viant/signoff/model"
	"github.com/viant/signoff/policy"
	"github.com/viant/signoff/portal"
	"github.com/viant/signoff/service/credential"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration.  SIGNOFF_CATEGORIES
// is a comma separated allow list of categories.
const (
	EnvBaseURL        = "SIGNOFF_BASE_URL"
	EnvIdentity       = "SIGNOFF_IDENTITY"
	EnvLogLevel       = "SIGNOFF_LOG_LEVEL"
	EnvMode           = "SIGNOFF_MODE"
	EnvPushURL        = "SIGNOFF_PUSH_URL"
	EnvCategories     = "SIGNOFF_CATEGORIES"
	EnvMaxConcurrency = "SIGNOFF_MAX_CONCURRENCY"
	EnvTimeout        = "SIGNOFF_TIMEOUT"
)

// Config is a serialisable representation of a run configuration. It can be
// loaded from YAML with LoadConfig and adjusted with ApplyEnv.
type Config struct {
	Portal      portal.Config     `json:"portal" yaml:"portal"`
	Identity    IdentityConfig    `json:"identity" yaml:"identity"`
	Credentials CredentialsConfig `json:"credentials" yaml:"credentials"`
	Policy      policy.Config     `json:"policy" yaml:"policy"`
	Workflow    WorkflowConfig    `json:"workflow" yaml:"workflow"`
	Logging     LoggingConfig     `json:"logging" yaml:"logging"`
	Tracing     TracingConfig     `json:"tracing" yaml:"tracing"`
	Metrics     MetricsConfig     `json:"metrics" yaml:"metrics"`
}

// IdentityConfig names the user the run signs as.
type IdentityConfig struct {
	// DisplayName is matched against payout authorizer names.
	DisplayName string `json:"displayName" yaml:"displayName"`
}

// CredentialsConfig selects the credential source.  When URL is set the
// credentials are read from an encrypted secret, otherwise from the
// environment.
type CredentialsConfig struct {
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Key         string `json:"key,omitempty" yaml:"key,omitempty"`
	UsernameEnv string `json:"usernameEnv,omitempty" yaml:"usernameEnv,omitempty"`
	PasswordEnv string `json:"passwordEnv,omitempty" yaml:"passwordEnv,omitempty"`
}

type WorkflowConfig struct {
	// MaxConcurrency bounds concurrent authorizations per category; 0 is unbounded.
	MaxConcurrency int `json:"maxConcurrency" yaml:"maxConcurrency"`
}

type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

type TracingConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// OutputFile receives the spans; empty means stdout.
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

type MetricsConfig struct {
	PushURL string `json:"pushURL,omitempty" yaml:"pushURL,omitempty"`
	Job     string `json:"job,omitempty" yaml:"job,omitempty"`
}

// DefaultConfig returns a Config targeting the production portal.
func DefaultConfig() *Config {
	return &Config{
		Portal: portal.DefaultConfig(),
		Credentials: CredentialsConfig{
			UsernameEnv: credential.DefaultUsernameEnv,
			PasswordEnv: credential.DefaultPasswordEnv,
		},
		Policy:  policy.Config{Mode: policy.ModeAuto},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Metrics: MetricsConfig{Job: "signoff"},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config was nil")
	}
	if err := c.Portal.Validate(); err != nil {
		return err
	}
	if err := c.Policy.Validate(); err != nil {
		return err
	}
	if c.Workflow.MaxConcurrency < 0 {
		return fmt.Errorf("workflow.maxConcurrency must be >= 0")
	}
	if c.Identity.DisplayName == "" && policy.FromConfig(&c.Policy).IsAllowed(model.CategoryPayouts.String()) {
		return fmt.Errorf("identity.displayName was empty")
	}
	return nil
}

// LoadConfig reads a YAML configuration from any afs supported URL on top
// of DefaultConfig.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	return ret, nil
}

// ApplyEnv overrides settings with the SIGNOFF_* environment variables.
func (c *Config) ApplyEnv() {
	c.Portal.BaseURL = env.String(EnvBaseURL, c.Portal.BaseURL)
	c.Identity.DisplayName = env.String(EnvIdentity, c.Identity.DisplayName)
	c.Logging.Level = env.String(EnvLogLevel, c.Logging.Level)
	c.Policy.Mode = strings.ToLower(env.String(EnvMode, c.Policy.Mode))
	c.Metrics.PushURL = env.String(EnvPushURL, c.Metrics.PushURL)
	c.Policy.AllowList = env.List(EnvCategories, c.Policy.AllowList)
	c.Workflow.MaxConcurrency = env.Int(EnvMaxConcurrency, c.Workflow.MaxConcurrency)
	c.Portal.Timeout = env.Duration(EnvTimeout, c.Portal.Timeout)
}

func (c *Config) credentialSource() credential.Source {
	if c.Credentials.URL != "" {
		return credential.NewSecret(c.Credentials.URL, c.Credentials.Key)
	}
	return credential.NewEnv(c.Credentials.UsernameEnv, c.Credentials.PasswordEnv)
}
