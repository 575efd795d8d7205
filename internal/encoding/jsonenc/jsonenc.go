// Package jsonenc implements the encoding interfaces using encoding/json.
package jsonenc

import (
	"encoding/json"

	"github.com/trackinventory/trackinventory/internal/encoding"
)

// Encoder marshals and unmarshals values as JSON.
type Encoder struct{}

var _ encoding.MarshalUnmarshaler = Encoder{}

// New creates a new JSON encoder.
func New() Encoder {
	return Encoder{}
}

// Marshal encodes v as JSON.
func (Encoder) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (Encoder) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
