package yamlconfig

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/redactyl/yamlconfig/internal/config"
	"github.com/redactyl/yamlconfig/internal/loader"
	"github.com/redactyl/yamlconfig/internal/logging"
	"github.com/redactyl/yamlconfig/internal/rootdir"
	"github.com/redactyl/yamlconfig/internal/tree"
)

// settings holds the tool settings files found for this run.
type settings struct {
	local, global config.FileConfig
}

func loadSettings() settings {
	var s settings
	if c, err := config.LoadGlobal(); err == nil {
		s.global = c
	}
	if wd, err := os.Getwd(); err == nil {
		if c, err := config.LoadLocal(wd); err == nil {
			s.local = c
		}
	}
	return s
}

// loadFlags are the parse options every loading command accepts.
type loadFlags struct {
	configs       []string
	joinRootdir   bool
	noMergeLinked bool
	roundTrip     bool
	keyRegex      []string
	exclude       []string
}

func (s settings) noColor(cli bool) bool {
	return pickBool(cli, s.local.NoColor, s.global.NoColor)
}

// loaderOptions merges flags with the settings files: flag, then local,
// then global.
func (s settings) loaderOptions(f loadFlags) (loader.Options, error) {
	opts := loader.Options{
		JoinRootdir:      pickBool(f.joinRootdir, s.local.JoinRootdir, s.global.JoinRootdir),
		MergeLinkedFiles: true,
		RoundTrip:        pickBool(f.roundTrip, s.local.RoundTrip, s.global.RoundTrip),
		Exclude:          pickStrings(f.exclude, s.local.Exclude, s.global.Exclude),
	}
	if f.noMergeLinked {
		opts.MergeLinkedFiles = false
	} else if v := firstBool(s.local.MergeLinkedFiles, s.global.MergeLinkedFiles); v != nil {
		opts.MergeLinkedFiles = *v
	}
	if patterns := pickStrings(f.keyRegex, s.local.KeyRegex, s.global.KeyRegex); len(patterns) > 0 {
		rules, err := rootdir.NewRegexRules(patterns...)
		if err != nil {
			return opts, err
		}
		opts.Rules = rules
	}
	return opts, nil
}

func resolverOptions(o loader.Options) rootdir.Options {
	return rootdir.Options{Rules: o.Rules, Exclude: o.Exclude}
}

// loadConfig parses and merges the files named by f, last file winning.
func loadConfig(f loadFlags, s settings) (*tree.Map, loader.Options, error) {
	if len(f.configs) == 0 {
		return nil, loader.Options{}, fmt.Errorf("at least one --config file is required")
	}
	opts, err := s.loaderOptions(f)
	if err != nil {
		return nil, opts, err
	}
	logging.Debug().
		Strs("files", f.configs).
		Bool("join_rootdir", opts.JoinRootdir).
		Bool("merge_linked_files", opts.MergeLinkedFiles).
		Msg("loading configuration")
	m, err := loader.ParseMergeMultiple(f.configs, opts)
	if err != nil {
		return nil, opts, err
	}
	return m, opts, nil
}

// useColor reports whether output to w should be highlighted.
func useColor(w io.Writer, s settings) bool {
	return !s.noColor(flagNoColor) && logging.IsTerminal(w)
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func firstBool(vals ...*bool) *bool {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func pickStrings(cli, local, global []string) []string {
	if len(cli) > 0 {
		return cli
	}
	if len(local) > 0 {
		return local
	}
	return global
}

// splitList splits comma-separated flag values and drops empty entries.
func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func addLoadFlags(fs *pflag.FlagSet, f *loadFlags) {
	fs.StringArrayVarP(&f.configs, "config", "c", nil, "config YAML file (repeat to merge, last wins)")
	fs.BoolVar(&f.joinRootdir, "join-rootdir", false, "resolve path-like values against rootdir")
	fs.BoolVar(&f.noMergeLinked, "no-merge-linked", false, "do not merge files listed under config_files")
	fs.BoolVar(&f.roundTrip, "round-trip", false, "keep comments and flow style")
	fs.StringArrayVar(&f.keyRegex, "key-regex", nil, "regex for path-like keys (repeatable, replaces the defaults)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "keys or globs never treated as paths")
}
