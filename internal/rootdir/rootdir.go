package rootdir

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/redactyl/yamlconfig/internal/logging"
	"github.com/redactyl/yamlconfig/internal/tree"
)

// Key is the reserved key holding the base directory of a mapping.
const Key = "rootdir"

// Options selects which keys are treated as paths.
type Options struct {
	// Rules matches path-like keys. Nil means DefaultRules.
	Rules Matcher
	// Exclude lists keys (or doublestar globs over keys) that are never
	// resolved. Key is always excluded.
	Exclude []string
}

// IsPathKey reports whether the value under key would be resolved.
func (o Options) IsPathKey(key string) bool {
	if key == Key {
		return false
	}
	for _, pat := range o.Exclude {
		if pat == key {
			return false
		}
		if ok, _ := doublestar.Match(pat, key); ok {
			return false
		}
	}
	rules := o.Rules
	if rules == nil {
		rules = defaultRules
	}
	return rules.Match(key)
}

// effectiveRoot is the mapping's own non-empty rootdir, else fallback.
func effectiveRoot(m *tree.Map, fallback string) string {
	if s, ok := m.String(Key); ok {
		return s
	}
	return fallback
}

// JoinPaths rewrites the values of path-like keys in m into absolute paths
// rooted at m's rootdir, or defaultRoot when m has none. Nested mappings
// inherit the root unless they declare their own rootdir. When no root is
// known, m is returned untouched. Values that are not strings (numbers,
// booleans, null) are left as authored.
func JoinPaths(m *tree.Map, defaultRoot string, opts Options) *tree.Map {
	if m == nil {
		return m
	}
	root := effectiveRoot(m, defaultRoot)
	logging.Debug().Str("rootdir", root).Msg("join paths")
	if root == "" {
		return m
	}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if sub, ok := tree.AsMap(v); ok {
			JoinPaths(sub, root, opts)
			continue
		}
		if !opts.IsPathKey(key) {
			continue
		}
		switch t := v.(type) {
		case nil:
		case string:
			m.Set(key, joinMaybe(root, t))
		case []any:
			for i, e := range t {
				if s, ok := e.(string); ok {
					t[i] = joinMaybe(root, s)
				}
			}
		default:
			logging.Debug().Str("key", key).Msgf("not joining %T value", v)
		}
	}
	return m
}

// joinMaybe returns the absolute form of path under root. An absolute path
// is returned cleaned; if the absolute form cannot be computed the path is
// returned unchanged.
func joinMaybe(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	abs, err := filepath.Abs(filepath.Join(root, path))
	if err != nil {
		return path
	}
	return abs
}

// StripRootdir reverses JoinPaths for serialization: absolute string values
// of path-like keys that lie below rootdir are rewritten relative to it.
// Paths outside rootdir stay absolute. m must carry rootdir at its top
// level, otherwise nothing happens. Sequences are left as they are.
func StripRootdir(m *tree.Map, opts Options) {
	strip(m, "", opts)
}

func strip(m *tree.Map, parentRoot string, opts Options) {
	root := effectiveRoot(m, parentRoot)
	if root == "" {
		return
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return
	}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if sub, ok := tree.AsMap(v); ok {
			strip(sub, absRoot, opts)
			continue
		}
		if !opts.IsPathKey(key) {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		if rel, ok := relativeTo(absRoot, s); ok {
			m.Set(key, rel)
		}
	}
}

// relativeTo returns path relative to root when path is absolute and does
// not escape root.
func relativeTo(root, path string) (string, bool) {
	if !filepath.IsAbs(path) {
		return "", false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		// e.g. different volumes on Windows
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// SetRootdir stores the directory of configFile as rootdir unless m already
// has a non-empty one.
func SetRootdir(m *tree.Map, configFile string) {
	if _, ok := m.String(Key); ok {
		return
	}
	m.Set(Key, filepath.Dir(configFile))
}
