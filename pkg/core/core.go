package core

import (
	"github.com/redactyl/yamlconfig/internal/loader"
	"github.com/redactyl/yamlconfig/internal/merge"
	"github.com/redactyl/yamlconfig/internal/postproc"
	"github.com/redactyl/yamlconfig/internal/rootdir"
	"github.com/redactyl/yamlconfig/internal/tree"
	"github.com/redactyl/yamlconfig/internal/yamlio"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Map               = tree.Map
	Options           = loader.Options
	PathOptions       = rootdir.Options
	Policy            = merge.Policy
	SelectOptions     = postproc.SelectOptions
	Matcher           = rootdir.Matcher
	FileError         = yamlio.FileError
	ParseError        = yamlio.ParseError
	CycleError        = loader.CycleError
	RequiredKeysError = postproc.RequiredKeysError
)

// Merge policies for UpdateRecursive and Merged.
var (
	IgnoreMissing = merge.IgnoreMissing
	Strict        = merge.Strict
	Intersect     = merge.Intersect
)

// ErrNoInput is returned by MergeMultiple for an empty list.
var ErrNoInput = merge.ErrNoInput

// DefaultOptions merges linked files and leaves values as authored.
func DefaultOptions() Options { return loader.DefaultOptions() }

// NewMap returns an empty configuration tree.
func NewMap() *Map { return tree.New() }

// ParseConfigFile loads and resolves a single configuration file.
func ParseConfigFile(path string, opts Options) (*Map, error) {
	return loader.ParseConfigFile(path, opts)
}

// ParseMergeMultiple resolves every file and merges them, last file winning.
func ParseMergeMultiple(paths []string, opts Options) (*Map, error) {
	return loader.ParseMergeMultiple(paths, opts)
}

// MergeMultiple merges already loaded trees, last tree winning.
func MergeMultiple(trees []*Map) (*Map, error) { return merge.MergeMultiple(trees) }

// UpdateRecursive merges subset into template in place.
func UpdateRecursive(template, subset *Map, p Policy) *Map {
	out, _ := tree.AsMap(merge.UpdateRecursive(template, subset, p))
	return out
}

// Merged returns template with subset merged in; neither input changes.
func Merged(template, subset *Map, p Policy) *Map { return merge.Merged(template, subset, p) }

// JoinPaths resolves path-like values in m against its rootdir, or
// defaultRoot when m has none.
func JoinPaths(m *Map, defaultRoot string, opts PathOptions) *Map {
	return rootdir.JoinPaths(m, defaultRoot, opts)
}

// StripRootdir rewrites absolute paths below rootdir back to relative ones.
func StripRootdir(m *Map, opts PathOptions) { rootdir.StripRootdir(m, opts) }

// NewRegexRules builds a path-key matcher from regular expressions.
func NewRegexRules(patterns ...string) (Matcher, error) {
	return rootdir.NewRegexRules(patterns...)
}

// Load reads a YAML file without following links or resolving paths.
func Load(path string, roundTrip bool) (*Map, error) {
	mode := yamlio.Plain
	if roundTrip {
		mode = yamlio.RoundTrip
	}
	return yamlio.Load(path, mode)
}

// Save writes m as YAML with paths below rootdir made relative again.
func Save(path string, m *Map, opts PathOptions) error { return yamlio.Save(path, m, opts) }

// Select keeps chosen top-level keys, filling defaults for optional ones.
func Select(m *Map, opts SelectOptions) (*Map, error) { return postproc.Select(m, opts) }

// Fingerprint returns a stable hash of m's content and key order.
func Fingerprint(m *Map) (string, error) { return tree.Fingerprint(m) }
