package rootdir

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/redactyl/yamlconfig/internal/logging"
)

// DefaultKeyRegex matches keys such as some_dir, my_file_trails, someDir,
// myFile or somedir while rejecting profile and nadir.
var DefaultKeyRegex = []string{
	`.*_(file|dir)($|_.*)`,
	`.*(File|Dir)($|_.*)`,
	`.*(?<![Pp]ro)file($|_.*)`,
	`.*(?<![Nn]a)dir($|_.*)`,
}

// Matcher decides whether a key names a file-system path.
type Matcher interface {
	Match(key string) bool
}

// RegexRules matches a key when any pattern matches from its first character.
type RegexRules struct {
	patterns []*regexp2.Regexp
}

// MatchTimeout bounds a single key match. A match that runs out of time
// counts as no match.
const MatchTimeout = time.Second

// NewRegexRules compiles patterns. Lookbehind and other .NET-style
// constructs are accepted.
func NewRegexRules(patterns ...string) (*RegexRules, error) {
	rr := &RegexRules{}
	for _, p := range patterns {
		re, err := regexp2.Compile(`^(?:`+p+`)`, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compile key regex %q: %w", p, err)
		}
		re.MatchTimeout = MatchTimeout
		rr.patterns = append(rr.patterns, re)
	}
	return rr, nil
}

// Match implements Matcher.
func (rr *RegexRules) Match(key string) bool {
	for _, re := range rr.patterns {
		ok, err := re.MatchString(key)
		if err != nil {
			logging.Warn().Err(err).Str("regex", re.String()).Str("key", key).Msg("key regex match failed")
			continue
		}
		if ok {
			logging.Debug().Str("regex", re.String()).Str("key", key).Msg("key matches")
			return true
		}
	}
	return false
}

// SuffixRules is the older naming convention: a key matches when it ends
// with one of Endings or contains one of Contains. It accepts profile as a
// path key; prefer the regex rules.
type SuffixRules struct {
	Endings  []string
	Contains []string
}

// DefaultSuffixRules returns the endings dir, file, File and the substring _dir.
func DefaultSuffixRules() SuffixRules {
	return SuffixRules{
		Endings:  []string{"dir", "file", "File"},
		Contains: []string{"_dir"},
	}
}

// Match implements Matcher.
func (sr SuffixRules) Match(key string) bool {
	for _, e := range sr.Endings {
		if strings.HasSuffix(key, e) {
			logging.Debug().Str("key", key).Str("ending", e).Msg("key matches")
			return true
		}
	}
	for _, c := range sr.Contains {
		if strings.Contains(key, c) {
			logging.Debug().Str("key", key).Str("substring", c).Msg("key matches")
			return true
		}
	}
	return false
}

var defaultRules = mustRegexRules(DefaultKeyRegex...)

// DefaultRules returns the compiled DefaultKeyRegex.
func DefaultRules() Matcher { return defaultRules }

func mustRegexRules(patterns ...string) *RegexRules {
	rr, err := NewRegexRules(patterns...)
	if err != nil {
		panic(err)
	}
	return rr
}
