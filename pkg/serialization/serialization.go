// Package serialization provides the codecs used to store rendered pages in a
// remote cache tier.
package serialization

import "fmt"

const (
	// JSONType represents the serialization type for JSON format.
	JSONType = "json"
	// GobType represents the serialization type for Gob format.
	GobType = "gob"
)

// Codec converts values to and from bytes.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// ForType returns the codec registered for typ. An empty type selects JSON.
func ForType(typ string) (Codec, error) {
	switch typ {
	case "", JSONType:
		return JSON{}, nil
	case GobType:
		return Gob{}, nil
	default:
		return nil, fmt.Errorf("unsupported serialization type: %s", typ)
	}
}
