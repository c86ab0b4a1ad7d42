package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format names a record serialization. It doubles as the file extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var errInvalidRecord = errors.New("record has no nickname")

// Encode serializes p in format f.
func Encode(f Format, p *Profile) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		return json.Marshal(p)
	case FormatYAML:
		return yaml.Marshal(p)
	default:
		return nil, fmt.Errorf("unsupported record format %q", f)
	}
}

// Decode parses data written by Encode. A record without a nickname is
// treated as corrupt.
func Decode(f Format, data []byte) (*Profile, error) {
	var p Profile
	var err error
	switch f {
	case FormatJSON, "":
		err = json.Unmarshal(data, &p)
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("unsupported record format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s record: %w", f, err)
	}
	if p.Nickname == "" {
		return nil, errInvalidRecord
	}
	return &p, nil
}
