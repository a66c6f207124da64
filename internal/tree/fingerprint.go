package tree

import (
	"encoding/json"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the ordered JSON form of m. Two trees with the same keys,
// order and values produce the same fingerprint; comments are ignored.
func Fingerprint(m *Map) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}
