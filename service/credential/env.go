package credential

import (
	"context"
	"fmt"
	"os"
)

// Default environment variable names.
const (
	DefaultUsernameEnv = "USERNAME"
	DefaultPasswordEnv = "PASSWORD"
)

// Env reads credentials from environment variables.
type Env struct {
	UsernameKey string
	PasswordKey string
}

// NewEnv returns an environment source; empty keys fall back to USERNAME and PASSWORD.
func NewEnv(usernameKey, passwordKey string) *Env {
	if usernameKey == "" {
		usernameKey = DefaultUsernameEnv
	}
	if passwordKey == "" {
		passwordKey = DefaultPasswordEnv
	}
	return &Env{UsernameKey: usernameKey, PasswordKey: passwordKey}
}

// Credentials reads the configured variables verbatim.
func (e *Env) Credentials(_ context.Context) (*Credentials, error) {
	ret := &Credentials{
		Username: os.Getenv(e.UsernameKey),
		Password: os.Getenv(e.PasswordKey),
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("%w: set %s and %s", err, e.UsernameKey, e.PasswordKey)
	}
	return ret, nil
}
