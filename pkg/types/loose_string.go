package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LooseString decodes JSON strings, numbers, and booleans into their text form.
// Booleans become "1" or "0"; null leaves the value empty.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*s = ""
		return nil
	}
	switch trimmed[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*s = LooseString(raw)
	case 't':
		*s = "1"
	case 'f':
		*s = "0"
	case '{', '[':
		return fmt.Errorf("cannot decode %s into a string", trimmed)
	default:
		var num json.Number
		if err := json.Unmarshal(trimmed, &num); err != nil {
			return err
		}
		*s = LooseString(num.String())
	}
	return nil
}

func (s LooseString) String() string {
	return string(s)
}
