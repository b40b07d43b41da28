package credential

import (
	"context"
	"fmt"

	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"github.com/viant/toolbox"
)

// Secret reads a basic credential (username/password) stored with viant/scy,
// optionally encrypted with Key (e.g. "blowfish://default").
type Secret struct {
	URL        string
	Key        string
	scyService *scy.Service
}

// NewSecret creates a secret backed source.
func NewSecret(URL, key string) *Secret {
	return &Secret{URL: URL, Key: key, scyService: scy.New()}
}

// Credentials loads and decrypts the secret.
func (s *Secret) Credentials(ctx context.Context) (*Credentials, error) {
	targetType, err := cred.TargetType("basic")
	if err != nil {
		return nil, fmt.Errorf("invalid target type 'basic': %w", err)
	}
	resource := scy.NewResource(targetType, s.URL, s.Key)
	secret, err := s.scyService.Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load secret from %s: %w", s.URL, err)
	}
	ret, err := fromSecret(secret.Target)
	if err != nil {
		return nil, fmt.Errorf("secret %s: %w", s.URL, err)
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("secret %s: %w", s.URL, err)
	}
	return ret, nil
}

func fromSecret(target interface{}) (*Credentials, error) {
	switch actual := target.(type) {
	case *cred.Basic:
		return &Credentials{Username: actual.Username, Password: actual.Password}, nil
	case nil:
		return nil, ErrUnsupportedSecret
	}
	aMap := map[string]interface{}{}
	if err := toolbox.DefaultConverter.AssignConverted(&aMap, target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSecret, err)
	}
	return &Credentials{
		Username: toolbox.AsString(aMap["Username"]),
		Password: toolbox.AsString(aMap["Password"]),
	}, nil
}
