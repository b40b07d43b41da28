package credential

import (
	"context"
	"fmt"
	"log/slog"
)

const redacted = "[redacted]"

// Credentials holds the portal login.
type Credentials struct {
	Username string
	Password string
}

// Validate checks that both fields are set.
func (c *Credentials) Validate() error {
	if c == nil || c.Username == "" || c.Password == "" {
		return ErrMissing
	}
	return nil
}

// String renders the credentials with the password redacted.
func (c Credentials) String() string {
	return fmt.Sprintf("{username: %s, password: %s}", c.Username, redacted)
}

// GoString keeps %#v from printing the password.
func (c Credentials) GoString() string {
	return c.String()
}

// LogValue renders the credentials for slog with the password redacted.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", redacted),
	)
}

// Source provides credentials.
type Source interface {
	Credentials(ctx context.Context) (*Credentials, error)
}

// Static is a fixed credential source.
type Static Credentials

// Credentials returns a copy of the static credentials.
func (s Static) Credentials(_ context.Context) (*Credentials, error) {
	ret := Credentials(s)
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return &ret, nil
}
