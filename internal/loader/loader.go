package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/redactyl/yamlconfig/internal/logging"
	"github.com/redactyl/yamlconfig/internal/merge"
	"github.com/redactyl/yamlconfig/internal/rootdir"
	"github.com/redactyl/yamlconfig/internal/tree"
	"github.com/redactyl/yamlconfig/internal/yamlio"
)

// ConfigFilesKey lists the files linked from a configuration file.
const ConfigFilesKey = "config_files"

// Options controls how a configuration file is parsed.
type Options struct {
	// JoinRootdir resolves path-like values against rootdir, falling back
	// to the directory of the file being parsed.
	JoinRootdir bool
	// MergeLinkedFiles folds the files listed under config_files into the
	// result. When false the list is still removed from the result.
	MergeLinkedFiles bool
	// RoundTrip keeps comments for a later save.
	RoundTrip bool
	// Rules and Exclude select path-like keys. Setting either one enables
	// path resolution even when JoinRootdir is false.
	Rules   rootdir.Matcher
	Exclude []string
}

// DefaultOptions merges linked files and leaves values as authored.
func DefaultOptions() Options {
	return Options{MergeLinkedFiles: true}
}

func (o Options) resolver() rootdir.Options {
	return rootdir.Options{Rules: o.Rules, Exclude: o.Exclude}
}

func (o Options) joins() bool {
	return o.JoinRootdir || o.Rules != nil || len(o.Exclude) > 0
}

func (o Options) mode() yamlio.Mode {
	if o.RoundTrip {
		return yamlio.RoundTrip
	}
	return yamlio.Plain
}

// CycleError reports a configuration file that links to itself, directly
// or through other files.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "config_files cycle: " + strings.Join(e.Chain, " -> ")
}

// ParseConfigFile loads the file at path and resolves it.
//
// Path-like values are joined with rootdir when opts asks for it. The
// config_files list is removed; with MergeLinkedFiles each listed file is
// parsed with the same options (relative entries are taken relative to
// rootdir, or the file's directory) and merged in. The first listed file
// wins among linked files, and the values written in the requested file
// win over everything it links to.
func ParseConfigFile(path string, opts Options) (*tree.Map, error) {
	return parse(path, opts, nil)
}

func parse(path string, opts Options, stack []string) (*tree.Map, error) {
	key := stackKey(path)
	for _, seen := range stack {
		if seen == key {
			return nil, &CycleError{Chain: append(append([]string(nil), stack...), key)}
		}
	}
	stack = append(stack, key)

	m, err := yamlio.Load(path, opts.mode())
	if err != nil {
		return nil, err
	}

	fileDir := filepath.Dir(path)
	if opts.joins() {
		rootdir.JoinPaths(m, fileDir, opts.resolver())
	}

	root := fileDir
	if s, ok := m.String(rootdir.Key); ok {
		root = s
	}

	linked, err := popConfigFiles(m, path)
	if err != nil {
		return nil, err
	}
	if !opts.MergeLinkedFiles || len(linked) == 0 {
		return m, nil
	}

	rules := m.Clone()
	for i := len(linked) - 1; i >= 0; i-- {
		lp := linked[i]
		if !filepath.IsAbs(lp) {
			lp = filepath.Join(root, lp)
		}
		logging.Debug().Str("from", path).Str("file", lp).Msg("merging linked config file")
		other, err := parse(lp, opts, stack)
		if err != nil {
			return nil, fmt.Errorf("linked from %s: %w", path, err)
		}
		other.Delete(rootdir.Key)
		merge.UpdateRecursive(m, other, merge.Strict)
	}
	merge.UpdateRecursive(m, rules, merge.Strict)
	return m, nil
}

// popConfigFiles removes config_files from m and returns its entries.
// A single string is accepted as a one-element list; null means none.
func popConfigFiles(m *tree.Map, path string) ([]string, error) {
	v, ok := m.Delete(ConfigFilesKey)
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, &yamlio.ParseError{Path: path, Err: fmt.Errorf("%s entries must be strings, got %T", ConfigFilesKey, e)}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &yamlio.ParseError{Path: path, Err: fmt.Errorf("%s must be a list, got %T", ConfigFilesKey, v)}
	}
}

func stackKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// ParseMergeMultiple parses each path on its own and merges the results
// with merge.MergeMultiple, so the last file wins.
func ParseMergeMultiple(paths []string, opts Options) (*tree.Map, error) {
	trees := make([]*tree.Map, 0, len(paths))
	for _, p := range paths {
		m, err := ParseConfigFile(p, opts)
		if err != nil {
			return nil, err
		}
		trees = append(trees, m)
	}
	return merge.MergeMultiple(trees)
}
