package yamlio

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/redactyl/yamlconfig/internal/logging"
	"github.com/redactyl/yamlconfig/internal/tree"
)

// Mode selects how much of the source formatting a load keeps.
type Mode int

const (
	// Plain keeps structure and key order only.
	Plain Mode = iota
	// RoundTrip also keeps comments and flow style so a later Save
	// reproduces them.
	RoundTrip
)

// Load reads and decodes the YAML file at path.
func Load(path string, mode Mode) (*tree.Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	m, err := Decode(b, mode)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	logging.Debug().Str("path", path).Int("keys", m.Len()).Msg("loaded config file")
	return m, nil
}

// Decode parses a YAML document whose root is a mapping. An empty or null
// document yields an empty Map.
func Decode(b []byte, mode Mode) (*tree.Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	d := &decoder{keepNotes: mode == RoundTrip}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return tree.New(), nil
		}
		root = doc.Content[0]
	}
	for root.Kind == yaml.AliasNode && root.Alias != nil {
		root = root.Alias
	}
	switch {
	case root.Kind == 0:
		return tree.New(), nil
	case root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null":
		return tree.New(), nil
	case root.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("line %d: %w", root.Line, ErrNotMapping)
	}
	m, err := d.mapping(root)
	if err != nil {
		return nil, err
	}
	if d.keepNotes {
		m.SetDocNote(tree.Note{
			Head: joinComments(doc.HeadComment, root.HeadComment),
			Foot: joinComments(root.FootComment, doc.FootComment),
		})
	}
	return m, nil
}

// Alias expansion limits. Past a few hundred thousand decoded nodes the
// share of nodes reached through aliases must shrink, which stops
// exponential documents such as billion laughs.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= aliasRatioRangeLow:
		return 0.99
	case decodeCount >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decodeCount-aliasRatioRangeLow)/aliasRatioRange)
	}
}

type decoder struct {
	keepNotes bool

	// anchors being expanded on the current path
	expanding   map[*yaml.Node]bool
	aliasDepth  int
	decodeCount int
	aliasCount  int
}

func (d *decoder) value(n *yaml.Node) (any, error) {
	d.decodeCount++
	if d.aliasDepth > 0 {
		d.aliasCount++
	}
	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return nil, fmt.Errorf("line %d: document contains excessive aliasing", n.Line)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.value(n.Content[0])
	case yaml.AliasNode:
		return d.alias(n)
	case yaml.MappingNode:
		return d.mapping(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.value(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

// alias decodes a fresh copy of the anchored node.
func (d *decoder) alias(n *yaml.Node) (any, error) {
	if n.Alias == nil {
		return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
	}
	if d.expanding[n.Alias] {
		return nil, fmt.Errorf("line %d: anchor %q contains itself", n.Line, n.Value)
	}
	if d.expanding == nil {
		d.expanding = make(map[*yaml.Node]bool)
	}
	d.expanding[n.Alias] = true
	d.aliasDepth++
	v, err := d.value(n.Alias)
	d.aliasDepth--
	delete(d.expanding, n.Alias)
	return v, err
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge"
}

// mapping keeps document order. Keys pulled in by << take the position of
// the << entry; explicit keys win over merged ones wherever they appear,
// and earlier merge sources win over later ones.
func (d *decoder) mapping(n *yaml.Node) (*tree.Map, error) {
	m := tree.New()
	if d.keepNotes && n.Style&yaml.FlowStyle != 0 {
		m.SetFlow(true)
	}
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; !isMergeKey(k) {
			explicit[k.Value] = true
		}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if isMergeKey(k) {
			srcs, err := d.mergeSources(v)
			if err != nil {
				return nil, err
			}
			for _, src := range srcs {
				for _, key := range src.Keys() {
					if explicit[key] || m.Has(key) {
						continue
					}
					val, _ := src.Get(key)
					m.Set(key, val)
				}
			}
			continue
		}
		val, err := d.value(v)
		if err != nil {
			return nil, err
		}
		m.Set(k.Value, val)
		if d.keepNotes {
			m.SetNote(k.Value, noteFor(k, v))
		}
	}
	return m, nil
}

func (d *decoder) mergeSources(v *yaml.Node) ([]*tree.Map, error) {
	if v.Kind == yaml.SequenceNode {
		var out []*tree.Map
		for _, c := range v.Content {
			srcs, err := d.mergeSources(c)
			if err != nil {
				return nil, err
			}
			out = append(out, srcs...)
		}
		return out, nil
	}
	val, err := d.value(v)
	if err != nil {
		return nil, err
	}
	m, ok := tree.AsMap(val)
	if !ok {
		return nil, fmt.Errorf("line %d: merge value is not a mapping", v.Line)
	}
	return []*tree.Map{m}, nil
}

func noteFor(k, v *yaml.Node) tree.Note {
	n := tree.Note{Head: k.HeadComment, Line: k.LineComment, Foot: k.FootComment}
	if n.Line == "" && v.Kind == yaml.ScalarNode {
		n.Line = v.LineComment
	}
	if n.Foot == "" {
		n.Foot = v.FootComment
	}
	return n
}

func joinComments(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
