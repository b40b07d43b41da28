package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Status represents how far a financial item got through its sign-off chain.
type Status int

const (
	// StatusUnknown is used for values the portal may add in the future.
	StatusUnknown Status = iota
	// StatusNone means nobody has signed the item yet ("false").
	StatusNone
	// StatusPartial means some but not all required signatures are present.
	StatusPartial
	// StatusAuthorized means the item is fully signed ("true").
	StatusAuthorized
)

// ParseStatus converts a portal status literal.  Only the exact lowercase
// literals are recognised; anything else is StatusUnknown.
func ParseStatus(value string) Status {
	switch value {
	case "true":
		return StatusAuthorized
	case "partial":
		return StatusPartial
	case "false":
		return StatusNone
	}
	return StatusUnknown
}

func (s Status) String() string {
	switch s {
	case StatusAuthorized:
		return "true"
	case StatusPartial:
		return "partial"
	case StatusNone:
		return "false"
	}
	return "unknown"
}

// MarshalJSON encodes the status as the portal literal.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the string literals as well as JSON booleans.
func (s *Status) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*s = StatusAuthorized
		return nil
	case "false":
		*s = StatusNone
		return nil
	case "null", "":
		*s = StatusUnknown
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("invalid status %s: %w", data, err)
	}
	*s = ParseStatus(text)
	return nil
}

// Flag is a boolean transported as either a JSON boolean or a string.
type Flag bool

// UnmarshalJSON sets the flag for true and "true" only.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", `"true"`:
		*f = true
	default:
		*f = false
	}
	return nil
}
