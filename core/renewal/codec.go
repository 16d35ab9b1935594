package renewal

import (
	"encoding/json"
	"fmt"
)

// EncodeTarget serializes the scheduled target of r for storage in a single column or field.
func EncodeTarget(r *Renewal) ([]byte, error) {
	data, err := json.Marshal(r.Target)
	if err != nil {
		return nil, fmt.Errorf("encode renewal target: %w", err)
	}
	return data, nil
}

// DecodeTarget restores a target written by EncodeTarget into r.
func DecodeTarget(r *Renewal, data []byte) error {
	if err := json.Unmarshal(data, &r.Target); err != nil {
		return fmt.Errorf("decode renewal target: %w", err)
	}
	return nil
}

// Marshal encodes the whole renewal as JSON.
func Marshal(r *Renewal) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode renewal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a renewal written by Marshal.
func Unmarshal(data []byte) (*Renewal, error) {
	var r Renewal
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode renewal: %w", err)
	}
	return &r, nil
}
