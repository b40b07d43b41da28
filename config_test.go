package signoff_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/signoff"
	"github.com/viant/signoff/policy"
	"github.com/viant/signoff/portal"
)

const configYAML = `
portal:
  baseURL: https://portal.example.com
  timeout: 5s
identity:
  displayName: Ada Lovelace
policy:
  mode: report
  allow: [payouts, salaries]
workflow:
  maxConcurrency: 4
logging:
  level: debug
  format: text
metrics:
  pushURL: http://pushgateway:9091
`

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	URL := "mem://localhost/signoff/config.yaml"
	require.NoError(t, afs.New().Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte(configYAML))))

	config, err := signoff.LoadConfig(ctx, URL)
	require.NoError(t, err)
	assert.NoError(t, config.Validate())
	assert.Equal(t, "https://portal.example.com", config.Portal.BaseURL)
	assert.Equal(t, 5*time.Second, config.Portal.Timeout)
	assert.Equal(t, portal.DefaultUserAgent, config.Portal.UserAgent)
	assert.Equal(t, "Ada Lovelace", config.Identity.DisplayName)
	assert.Equal(t, policy.ModeReport, config.Policy.Mode)
	assert.Equal(t, []string{"payouts", "salaries"}, config.Policy.AllowList)
	assert.Equal(t, 4, config.Workflow.MaxConcurrency)
	assert.Equal(t, "text", config.Logging.Format)
	assert.Equal(t, "signoff", config.Metrics.Job)
	assert.Equal(t, "USERNAME", config.Credentials.UsernameEnv)

	_, err = signoff.LoadConfig(ctx, "mem://localhost/signoff/missing.yaml")
	assert.Error(t, err)
}

func TestConfig_ApplyEnv(t *testing.T) {
	type testCase struct {
		name   string
		env    map[string]string
		verify func(t *testing.T, config *signoff.Config)
	}

	tests := []testCase{
		{
			name: "overrides",
			env: map[string]string{
				signoff.EnvBaseURL:        "http://localhost:8080",
				signoff.EnvIdentity:       "Grace Hopper",
				signoff.EnvMode:           "ASK",
				signoff.EnvCategories:     "payouts, invoices",
				signoff.EnvMaxConcurrency: "3",
				signoff.EnvTimeout:        "10s",
			},
			verify: func(t *testing.T, config *signoff.Config) {
				assert.Equal(t, "http://localhost:8080", config.Portal.BaseURL)
				assert.Equal(t, "Grace Hopper", config.Identity.DisplayName)
				assert.Equal(t, policy.ModeAsk, config.Policy.Mode)
				assert.Equal(t, []string{"payouts", "invoices"}, config.Policy.AllowList)
				assert.Equal(t, 3, config.Workflow.MaxConcurrency)
				assert.Equal(t, 10*time.Second, config.Portal.Timeout)
			},
		},
		{
			name: "invalid values keep defaults",
			env:  map[string]string{signoff.EnvMaxConcurrency: "-1", signoff.EnvTimeout: "soon"},
			verify: func(t *testing.T, config *signoff.Config) {
				assert.Equal(t, 0, config.Workflow.MaxConcurrency)
				assert.Equal(t, portal.DefaultTimeout, config.Portal.Timeout)
				assert.Equal(t, portal.DefaultBaseURL, config.Portal.BaseURL)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			config := signoff.DefaultConfig()
			config.ApplyEnv()
			tc.verify(t, config)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	type testCase struct {
		name        string
		mutate      func(config *signoff.Config)
		expectError bool
	}

	tests := []testCase{
		{name: "valid", mutate: func(config *signoff.Config) { config.Identity.DisplayName = "Ada" }},
		{name: "identity required for payouts", mutate: func(config *signoff.Config) {}, expectError: true},
		{name: "identity optional without payouts", mutate: func(config *signoff.Config) { config.Policy.BlockList = []string{"payouts"} }},
		{name: "bad base URL", mutate: func(config *signoff.Config) {
			config.Identity.DisplayName = "Ada"
			config.Portal.BaseURL = "portal"
		}, expectError: true},
		{name: "negative concurrency", mutate: func(config *signoff.Config) {
			config.Identity.DisplayName = "Ada"
			config.Workflow.MaxConcurrency = -1
		}, expectError: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := signoff.DefaultConfig()
			tc.mutate(config)
			err := config.Validate()
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
