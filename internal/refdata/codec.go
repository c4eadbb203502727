package refdata

import (
	"encoding/json"
	"fmt"
)

// EncodeState serializes the state for the slot.
func EncodeState(s *State) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return payload, nil
}

// DecodeState parses a slot payload. A payload without refs decodes to an empty mapping.
func DecodeState(payload []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if s.Refs == nil {
		s.Refs = make(map[string]RateRecord)
	}
	return &s, nil
}
