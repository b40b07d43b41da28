package credential

import "errors"

var (
	// ErrMissing is returned when the source yields no username or password.
	ErrMissing = errors.New("credential: missing username or password")

	// ErrUnsupportedSecret is returned when a secret cannot be mapped onto a basic credential.
	ErrUnsupportedSecret = errors.New("credential: unsupported secret type")
)
