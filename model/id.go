package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a portal record.  The portal emits numeric and textual
// identifiers interchangeably, so the encoding read is retained and used
// again when the ID is sent back.
type ID struct {
	value  string
	quoted bool
}

// NewID returns a textual identifier.
func NewID(value string) ID {
	return ID{value: value, quoted: true}
}

// NumericID returns a numeric identifier.
func NumericID(value int64) ID {
	return ID{value: strconv.FormatInt(value, 10)}
}

// String returns the identifier as it appears in URLs.
func (i ID) String() string {
	return i.value
}

// IsZero reports whether the identifier is empty.
func (i ID) IsZero() bool {
	return i.value == ""
}

// MarshalJSON encodes the identifier using the encoding it was read with.
func (i ID) MarshalJSON() ([]byte, error) {
	if i.quoted {
		return json.Marshal(i.value)
	}
	if i.value == "" {
		return []byte("null"), nil
	}
	return []byte(i.value), nil
}

// UnmarshalJSON accepts JSON strings and numbers.
func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*i = ID{}
		return nil
	case data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*i = ID{value: text, quoted: true}
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*i = ID{value: number.String()}
	return nil
}
