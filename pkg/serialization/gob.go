package serialization

import (
	"bytes"
	"encoding/gob"
)

// Gob encodes values with encoding/gob. It is more compact than JSON for page bodies.
type Gob struct{}

func (Gob) Name() string { return GobType }

// Marshal serializes v into a standalone gob stream.
func (Gob) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a stream produced by Marshal into v.
func (Gob) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
