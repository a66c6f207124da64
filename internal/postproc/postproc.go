package postproc

import (
	"fmt"
	"strings"

	"github.com/redactyl/yamlconfig/internal/tree"
)

// RequiredKeysError reports top-level keys a configuration must have but
// does not.
type RequiredKeysError struct {
	Missing []string
}

func (e *RequiredKeysError) Error() string {
	return fmt.Sprintf("config is missing required keys: %s", strings.Join(e.Missing, ", "))
}

// CheckRequiredKeys returns a *RequiredKeysError naming every key in keys
// that is absent from the top level of m.
func CheckRequiredKeys(m *tree.Map, keys []string) error {
	var missing []string
	for _, k := range keys {
		if m == nil || !m.Has(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &RequiredKeysError{Missing: missing}
	}
	return nil
}

// Squeeze returns the value of the only top-level key when that value is a
// mapping. Any other tree is returned as is.
func Squeeze(m *tree.Map) *tree.Map {
	if m == nil || m.Len() != 1 {
		return m
	}
	v, _ := m.Get(m.Keys()[0])
	if inner, ok := tree.AsMap(v); ok {
		return inner
	}
	return m
}

// SelectOptions describes which top-level keys Select keeps.
type SelectOptions struct {
	// Keys are kept in this order. Nil keeps every key.
	Keys []string
	// Defaults makes a key optional and supplies its value when absent.
	Defaults map[string]any
	// AllowMissing skips required keys that are absent instead of failing.
	AllowMissing bool
	// DropKeys are removed from the result last.
	DropKeys []string
}

// Select builds a new tree from the top level of m. Values are copied, so
// the result can be changed without touching m.
func Select(m *tree.Map, opts SelectOptions) (*tree.Map, error) {
	out := tree.New()
	if opts.Keys == nil {
		if m != nil {
			out = m.Clone()
		}
	} else {
		var missing []string
		for _, k := range opts.Keys {
			if m != nil {
				if v, ok := m.Get(k); ok {
					out.Set(k, tree.CloneValue(v))
					out.SetNote(k, m.Note(k))
					continue
				}
			}
			if def, ok := opts.Defaults[k]; ok {
				out.Set(k, tree.CloneValue(def))
				continue
			}
			if !opts.AllowMissing {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return nil, &RequiredKeysError{Missing: missing}
		}
	}
	for _, k := range opts.DropKeys {
		out.Delete(k)
	}
	return out, nil
}

// ParseKeySpecs reads entries of the form "name" or "name=default" into the
// key list and defaults used by SelectOptions. Default values are kept as
// strings.
func ParseKeySpecs(specs []string) ([]string, map[string]any) {
	keys := make([]string, 0, len(specs))
	defaults := map[string]any{}
	for _, s := range specs {
		name, def, hasDefault := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		keys = append(keys, name)
		if hasDefault {
			defaults[name] = def
		}
	}
	return keys, defaults
}
