package approval

import "errors"

var (
	// ErrNotFound is returned when deciding on an unknown request.
	ErrNotFound = errors.New("approval: request not found")

	// ErrDuplicate is returned when a request id is registered twice.
	ErrDuplicate = errors.New("approval: duplicate request")

	// ErrAlreadyDecided is returned when a request receives a second decision.
	ErrAlreadyDecided = errors.New("approval: already decided")
)
