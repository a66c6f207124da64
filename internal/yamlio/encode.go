package yamlio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/redactyl/yamlconfig/internal/rootdir"
	"github.com/redactyl/yamlconfig/internal/tree"
)

// Encode writes m as a YAML document, restoring any comments and flow
// style recorded by a round-trip load.
func Encode(w io.Writer, m *tree.Map) error {
	root, err := mapNode(m)
	if err != nil {
		return err
	}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	dn := m.DocNote()
	doc.HeadComment = dn.Head
	doc.FootComment = dn.Foot

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Marshal returns the YAML text of m.
func Marshal(m *tree.Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes m to path after turning resolved paths back into paths
// relative to m's rootdir. m itself is not modified.
func Save(path string, m *tree.Map, opts rootdir.Options) error {
	out := m.Clone()
	rootdir.StripRootdir(out, opts)
	b, err := Marshal(out)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}

func mapNode(m *tree.Map) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m.Flow() {
		n.Style = yaml.FlowStyle
	}
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		vn, err := valueNode(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		note := m.Note(key)
		kn.HeadComment = note.Head
		kn.FootComment = note.Foot
		if vn.Kind == yaml.ScalarNode {
			vn.LineComment = note.Line
		} else {
			kn.LineComment = note.Line
		}
		n.Content = append(n.Content, kn, vn)
	}
	return n, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *tree.Map:
		return mapNode(t)
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			en, err := valueNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}
