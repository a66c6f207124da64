package tree

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Note carries the comments attached to a key by a round-trip load.
type Note struct {
	Head string
	Line string
	Foot string
}

// IsZero reports whether the note carries no comments.
func (n Note) IsZero() bool { return n.Head == "" && n.Line == "" && n.Foot == "" }

// Map is an insertion-ordered configuration mapping.
// The zero value is not usable; construct with New.
type Map struct {
	om    *orderedmap.OrderedMap[string, any]
	notes map[string]Note
	doc   Note
	flow  bool
}

// New returns an empty Map.
func New() *Map {
	return &Map{om: orderedmap.New[string, any]()}
}

// Len returns the number of keys.
func (m *Map) Len() int { return m.om.Len() }

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) { return m.om.Get(key) }

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.om.Get(key)
	return ok
}

// Set stores value under key. Existing keys keep their position.
func (m *Map) Set(key string, value any) { m.om.Set(key, value) }

// Delete removes key and returns its previous value.
func (m *Map) Delete(key string) (any, bool) {
	v, ok := m.om.Delete(key)
	if ok {
		delete(m.notes, key)
	}
	return v, ok
}

// Keys returns a snapshot of the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.om.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// String returns the value under key if it is a non-empty string.
func (m *Map) String(key string) (string, bool) {
	v, ok := m.om.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Note returns the comments recorded for key.
func (m *Map) Note(key string) Note { return m.notes[key] }

// SetNote records comments for key.
func (m *Map) SetNote(key string, n Note) {
	if n.IsZero() {
		delete(m.notes, key)
		return
	}
	if m.notes == nil {
		m.notes = make(map[string]Note)
	}
	m.notes[key] = n
}

// DocNote returns the document-level comments (root maps only).
func (m *Map) DocNote() Note { return m.doc }

// SetDocNote records document-level comments.
func (m *Map) SetDocNote(n Note) { m.doc = n }

// Flow reports whether the mapping was authored in flow style.
func (m *Map) Flow() bool { return m.flow }

// SetFlow marks the mapping for flow-style output.
func (m *Map) SetFlow(flow bool) { m.flow = flow }

// MarshalJSON emits the mapping as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) { return m.om.MarshalJSON() }

// AsMap returns v as a *Map when it is one.
func AsMap(v any) (*Map, bool) {
	m, ok := v.(*Map)
	return m, ok && m != nil
}

// Clone returns a deep copy of m, including round-trip notes.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := New()
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		out.om.Set(p.Key, CloneValue(p.Value))
	}
	if len(m.notes) > 0 {
		out.notes = make(map[string]Note, len(m.notes))
		for k, n := range m.notes {
			out.notes[k] = n
		}
	}
	out.doc = m.doc
	out.flow = m.flow
	return out
}

// CloneValue deep-copies mappings and sequences; scalars are returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CloneValue(e)
		}
		return out
	default:
		return v
	}
}

// ToPlain converts m into nested map[string]any values, dropping order and notes.
func (m *Map) ToPlain() map[string]any {
	out := make(map[string]any, m.Len())
	for p := m.om.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = plainValue(p.Value)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.ToPlain()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}

// FromPlain builds a Map from nested Go maps. Keys are sorted since Go maps
// carry no order.
func FromPlain(in map[string]any) *Map {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := New()
	for _, k := range keys {
		out.Set(k, fromPlainValue(in[k]))
	}
	return out
}

func fromPlainValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return FromPlain(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromPlainValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return v
	}
}
