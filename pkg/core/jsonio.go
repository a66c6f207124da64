package core

import (
	"encoding/json"
	"io"

	"github.com/redactyl/yamlconfig/internal/yamlio"
)

// MarshalJSON pretty-prints m as JSON, keeping key order.
func MarshalJSON(w io.Writer, m *Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// UnmarshalJSON decodes a JSON object into a Map, keeping key order.
func UnmarshalJSON(r io.Reader) (*Map, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// JSON is a subset of YAML
	return yamlio.Decode(b, yamlio.Plain)
}
