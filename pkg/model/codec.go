package model

import (
	jsoniter "github.com/json-iterator/go"
)

// stateJSON fixes a canonical key order for maps, so converting the same
// container twice produces byte-identical statefiles.
var stateJSON = jsoniter.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
}.Froze()

// MarshalState serializes a state record to the JSON statefile body.
func MarshalState(s *State) ([]byte, error) {
	b, err := stateJSON.MarshalIndent(s, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// UnmarshalState parses a JSON statefile body.
func UnmarshalState(b []byte) (*State, error) {
	var s State
	if err := stateJSON.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
